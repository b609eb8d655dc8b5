package handler

import (
	"errors"

	"kitnotes/dto"
	"kitnotes/middleware"
	"kitnotes/model"
	"kitnotes/usecase"
	"kitnotes/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotebookHandler struct {
	service *usecase.NotebookService
	logger  *zap.Logger
}

func NewNotebookHandler(service *usecase.NotebookService, logger *zap.Logger) *NotebookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotebookHandler{
		service: service,
		logger:  logger,
	}
}

// currentUser returns the identity set by AuthMiddleware, or Anonymous.
func currentUser(c *gin.Context) model.User {
	if v, ok := c.Get("user"); ok {
		if user, ok := v.(model.User); ok {
			return user
		}
	}
	return model.Anonymous
}

// respondError maps service errors to responses. Requests without a user
// are answered by anonymous and never reported as errors.
func (h *NotebookHandler) respondError(c *gin.Context, err error, anonymous func(*gin.Context)) {
	var remote *usecase.RemoteError
	switch {
	case errors.Is(err, usecase.ErrAuthenticationMissing):
		anonymous(c)
	case errors.Is(err, usecase.ErrRecordNotFound):
		utils.NotFound(c, "Note not found")
	case errors.As(err, &remote):
		middleware.TrackError("record_store")
		utils.BadGateway(c, remote.Toast)
	default:
		middleware.TrackError("internal")
		h.logger.Error("notebook request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		utils.InternalError(c, "Internal server error")
	}
}

func emptyNotebook(c *gin.Context) {
	utils.Success(c, dto.EmptyNotebookResponse())
}

func emptyData(c *gin.Context) {
	utils.Success(c, nil)
}

// GetNotebook mounts the notebook and returns the filtered list with the
// tag vocabulary and selection.
func (h *NotebookHandler) GetNotebook(c *gin.Context) {
	state, err := h.service.Open(c.Request.Context(), currentUser(c))
	middleware.TrackNotebookOperation("load", ignoreAnonymous(err))
	if err != nil {
		h.respondError(c, err, emptyNotebook)
		return
	}
	utils.Success(c, dto.ToNotebookResponse(state))
}

func (h *NotebookHandler) CreateRecord(c *gin.Context) {
	id, location, err := h.service.Create(c.Request.Context(), currentUser(c))
	middleware.TrackNotebookOperation("create", ignoreAnonymous(err))
	if err != nil {
		h.respondError(c, err, utils.NoContent)
		return
	}
	utils.Created(c, dto.CreateRecordResponse{ID: id, Location: location})
}

// GetView resolves a client location such as
// "#/kit/notebook/detail/?id=abc&edit=true".
func (h *NotebookHandler) GetView(c *gin.Context) {
	view, record, err := h.service.View(c.Request.Context(), currentUser(c), c.Query("location"))
	if err != nil {
		h.respondError(c, err, emptyData)
		return
	}
	utils.Success(c, dto.ViewResponse{View: view, Record: record})
}

func (h *NotebookHandler) GetRecord(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err, emptyData)
		return
	}
	utils.Success(c, record)
}

func (h *NotebookHandler) SaveRecord(c *gin.Context) {
	var req dto.SaveRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	user := currentUser(c)
	id := c.Param("id")

	current, err := h.service.Get(ctx, user, id)
	if err != nil {
		h.respondError(c, err, utils.NoContent)
		return
	}

	err = h.service.Save(ctx, user, req.ToRecord(current))
	middleware.TrackNotebookOperation("save", err)
	if err != nil {
		h.respondError(c, err, utils.NoContent)
		return
	}

	saved, err := h.service.Get(ctx, user, id)
	if err != nil {
		h.respondError(c, err, utils.NoContent)
		return
	}
	utils.Success(c, saved)
}

func (h *NotebookHandler) ToggleStar(c *gin.Context) {
	record, err := h.service.ToggleStar(c.Request.Context(), currentUser(c), c.Param("id"))
	middleware.TrackNotebookOperation("star", ignoreAnonymous(err))
	if err != nil {
		h.respondError(c, err, utils.NoContent)
		return
	}
	utils.Success(c, record)
}

func (h *NotebookHandler) DeleteRecord(c *gin.Context) {
	location, err := h.service.Delete(c.Request.Context(), currentUser(c), c.Param("id"))
	middleware.TrackNotebookOperation("delete", ignoreAnonymous(err))
	if err != nil {
		h.respondError(c, err, utils.NoContent)
		return
	}
	utils.Success(c, dto.LocationResponse{Location: location})
}

func (h *NotebookHandler) GetTags(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	if _, err := h.service.State(ctx, user); err != nil {
		h.respondError(c, err, func(c *gin.Context) {
			utils.Success(c, dto.TagsResponse{Tags: []string{}})
		})
		return
	}
	utils.Success(c, dto.TagsResponse{Tags: h.service.LoadTags(ctx, user)})
}

func (h *NotebookHandler) SaveTags(c *gin.Context) {
	var req dto.TagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid tags")
		return
	}

	ctx := c.Request.Context()
	user := currentUser(c)

	toast, err := h.service.SaveTags(ctx, user, req.Tags)
	middleware.TrackNotebookOperation("save_tags", ignoreAnonymous(err))
	if err != nil {
		h.respondError(c, err, utils.NoContent)
		return
	}

	state, err := h.service.State(ctx, user)
	if err != nil {
		h.respondError(c, err, utils.NoContent)
		return
	}
	utils.SuccessWithMessage(c, toast, dto.TagsResponse{Tags: state.Notebook.Tags})
}

func (h *NotebookHandler) PruneTags(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	toast, err := h.service.PruneEmptyTags(ctx, user)
	middleware.TrackNotebookOperation("prune_tags", ignoreAnonymous(err))
	if err != nil {
		h.respondError(c, err, utils.NoContent)
		return
	}

	state, err := h.service.State(ctx, user)
	if err != nil {
		h.respondError(c, err, utils.NoContent)
		return
	}
	utils.SuccessWithMessage(c, toast, dto.ToNotebookResponse(state))
}

func (h *NotebookHandler) SelectTags(c *gin.Context) {
	var req dto.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid tags")
		return
	}

	ctx := c.Request.Context()
	user := currentUser(c)

	if _, err := h.service.State(ctx, user); err != nil {
		h.respondError(c, err, utils.NoContent)
		return
	}
	if _, err := h.service.SelectTags(ctx, user, req.Tags); err != nil {
		h.respondError(c, err, utils.NoContent)
		return
	}

	state, err := h.service.State(ctx, user)
	if err != nil {
		h.respondError(c, err, utils.NoContent)
		return
	}
	utils.Success(c, dto.ToNotebookResponse(state))
}

func ignoreAnonymous(err error) error {
	if errors.Is(err, usecase.ErrAuthenticationMissing) {
		return nil
	}
	return err
}
