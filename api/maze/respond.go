package mazeapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	dmn "github.com/beka-birhanu/vinom-runner/domain"
	"github.com/beka-birhanu/vinom-runner/maze"
	"github.com/gin-gonic/gin"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// MIMEProtobuf selects protobuf encoded responses when sent in the Accept header.
const MIMEProtobuf = "application/x-protobuf"

// respond writes payload as JSON, or as a protobuf Struct when the client accepts it.
func respond(ctx *gin.Context, status int, payload any) {
	if !strings.Contains(ctx.GetHeader("Accept"), MIMEProtobuf) {
		ctx.JSON(status, payload)
		return
	}

	msg, err := toStruct(payload)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	encoded, err := proto.Marshal(msg)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Data(status, MIMEProtobuf, encoded)
}

// toStruct converts a JSON serialisable value into a google.protobuf.Struct.
func toStruct(payload any) (*structpb.Struct, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, err
	}
	return structpb.NewStruct(fields)
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, maze.ErrInvalidArgument), errors.Is(err, maze.ErrFormat):
		return http.StatusBadRequest
	case errors.Is(err, maze.ErrNotFound), errors.Is(err, dmn.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, maze.ErrIllegalMove):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	respond(ctx, status, gin.H{"error": msg})
}
