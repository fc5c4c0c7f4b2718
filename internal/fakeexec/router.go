// Package fakeexec is a scripted stand-in for the problem catalog and code
// execution services.
package fakeexec

import (
	"net/http"

	commonmw "ojplay/internal/common/http/middleware"
	"ojplay/internal/fakeexec/controller"
	"ojplay/internal/fakeexec/service"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
)

// NewHandler builds the HTTP handler: gin routes behind gzip compression.
func NewHandler(executor *service.Executor) http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(commonmw.RequestIDMiddleware())
	router.Use(commonmw.AccessLogMiddleware())

	jobs := controller.NewJobController(executor)
	router.GET("/api/problem", jobs.ListProblems)
	router.POST("/api/jobs/execute/public", jobs.Execute)
	router.GET("/api/jobs/status/:id", jobs.Status)

	return gzhttp.GzipHandler(router)
}
