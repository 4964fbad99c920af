package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"kiosco/internal/apierror"
	"kiosco/internal/command"
)

// CommandsHandler exposes the command registry over HTTP: the UI invokes
// operations by name with a JSON payload.
type CommandsHandler struct{ reg *command.Registry }

func NewCommandsHandler(reg *command.Registry) *CommandsHandler {
	return &CommandsHandler{reg: reg}
}

// Invoke handles POST /invoke/:command.
func (h *CommandsHandler) Invoke(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return
	}

	result, err := h.reg.Dispatch(c.Request.Context(), c.Param("command"), body)
	if err != nil {
		var bindErr *command.BindError
		var valErr *command.ValidationError
		switch {
		case errors.Is(err, command.ErrUnknown):
			c.JSON(http.StatusNotFound, apierror.New("Comando desconocido"))
		case errors.As(err, &bindErr):
			c.JSON(http.StatusBadRequest, apierror.New(bindErr.Error()))
		case errors.As(err, &valErr):
			c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(valErr.Fields))
		default:
			// Services return user-facing messages; internal detail is
			// already in the log.
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
