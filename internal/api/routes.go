package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/corkboard/internal/board"
	"github.com/zulandar/corkboard/internal/card"
	"github.com/zulandar/corkboard/internal/event"
	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/gorm"
)

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB) {
	api := router.Group("/api")

	api.GET("/boards/:shortName/columns", handleListColumns(db))
	api.GET("/columns/:id/cards", handleColumnCards(db))
	api.GET("/cards/open", handleOpenCards(db))
	api.GET("/projects/:shortName/cards/open", handleOpenCardsByProject(db))
	api.GET("/cards/:id/events", handleCardEvents(db))

	api.POST("/cards", handleCreateCard(db))
	api.PUT("/cards/:id/name", handleRenameCard(db))
	api.POST("/cards/:id/move", handleMoveCard(db))
	api.POST("/cards/:id/move-reorder", handleMoveCardAndReorder(db))
	api.POST("/columns/:id/move-cards", handleBulkMoveCards(db))
}

// userID resolves the acting user from the X-User-Id header. Authentication
// itself is handled upstream; this service only needs the identity.
func userID(c *gin.Context) (uint, bool) {
	raw := c.GetHeader("X-User-Id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid X-User-Id header"})
		return 0, false
	}
	return uint(id), true
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// fail maps service errors to HTTP statuses.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, card.ErrNotFound) || errors.Is(err, board.ErrNotFound) {
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func handleListColumns(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := board.FindBoardByShortName(db, c.Param("shortName"))
		if err != nil {
			fail(c, err)
			return
		}
		cols, err := board.FindColumnsByBoardID(db, b.ID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cols)
	}
}

func handleColumnCards(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		columnID, ok := pathID(c)
		if !ok {
			return
		}
		res, err := card.FetchAllInColumn(db, columnID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func handleOpenCards(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
		if page < 0 || pageSize <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 0 and pageSize > 0"})
			return
		}
		holder, err := card.GetAllOpenCards(db, uid, page, pageSize)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, holder)
	}
}

func handleOpenCardsByProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
		if page < 0 || pageSize <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 0 and pageSize > 0"})
			return
		}
		holder, err := card.GetAllOpenCardsByProject(db, c.Param("shortName"), uid, page, pageSize)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, holder)
	}
}

func handleCardEvents(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cardID, ok := pathID(c)
		if !ok {
			return
		}
		events, err := event.FindByCardID(db, cardID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

type createCardRequest struct {
	Name     string `json:"name" binding:"required"`
	ColumnID uint   `json:"columnId" binding:"required"`
}

func handleCreateCard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		var req createCardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		created, err := card.CreateCard(db, req.Name, req.ColumnID, uid, time.Now())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

type renameCardRequest struct {
	Name string `json:"name" binding:"required"`
}

func handleRenameCard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		cardID, ok := pathID(c)
		if !ok {
			return
		}
		var req renameCardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		e, err := card.UpdateCard(db, cardID, req.Name, uid, time.Now())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

type moveCardRequest struct {
	FromColumnID uint `json:"fromColumnId" binding:"required"`
	ToColumnID   uint `json:"toColumnId" binding:"required"`
}

func handleMoveCard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		cardID, ok := pathID(c)
		if !ok {
			return
		}
		var req moveCardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		e, err := card.MoveCardToColumn(db, cardID, req.FromColumnID, req.ToColumnID, uid, time.Now())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

type moveReorderRequest struct {
	FromColumnID uint   `json:"fromColumnId" binding:"required"`
	ToColumnID   uint   `json:"toColumnId" binding:"required"`
	Order        []uint `json:"order" binding:"required"`
}

func handleMoveCardAndReorder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		cardID, ok := pathID(c)
		if !ok {
			return
		}
		var req moveReorderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		e, err := card.MoveCardToColumnAndReorder(db, cardID, req.FromColumnID, req.ToColumnID, req.Order, uid)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

type bulkMoveRequest struct {
	ToColumnID uint   `json:"toColumnId" binding:"required"`
	CardIDs    []uint `json:"cardIds" binding:"required"`
	EventType  string `json:"eventType"`
}

// bulkEventTypes are the transition kinds a bulk move may record.
var bulkEventTypes = map[string]models.EventType{
	"":                              models.EventCardMove,
	string(models.EventCardMove):    models.EventCardMove,
	string(models.EventCardArchive): models.EventCardArchive,
	string(models.EventCardBacklog): models.EventCardBacklog,
}

func handleBulkMoveCards(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		fromColumnID, ok := pathID(c)
		if !ok {
			return
		}
		var req bulkMoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		typ, ok := bulkEventTypes[req.EventType]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported event type"})
			return
		}
		moved, err := card.MoveCardsToColumn(db, req.CardIDs, fromColumnID, req.ToColumnID, uid, typ, time.Now())
		if err != nil {
			fail(c, err)
			return
		}
		if moved == nil {
			moved = []uint{}
		}
		c.JSON(http.StatusOK, gin.H{"movedIds": moved})
	}
}
