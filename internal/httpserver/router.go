package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services the router needs.
type Deps struct {
	CustomerSvc customerService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	customers := router.Group("/customers")
	{
		customers.POST("", createCustomer(deps.CustomerSvc))
		customers.GET("", getCustomers(deps.CustomerSvc))
		customers.GET("/:id", getCustomerByID(deps.CustomerSvc))
		customers.PUT("/:id", updateCustomer(deps.CustomerSvc))
		customers.DELETE("/:id", deleteCustomer(deps.CustomerSvc))
	}

	return router
}
