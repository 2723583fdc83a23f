package middleware

import (
	"context"

	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)

	// Echo the id so callers can correlate logs
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
