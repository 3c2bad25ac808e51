package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var inicio = time.Now()

// Health reporta el estado del servicio y sus dependencias. Cualquier
// dependencia caída degrada la respuesta a 503 para que el orquestador
// saque la instancia de rotación.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		postgres := "ok"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			postgres = "error"
		}

		redisEstado := "ok"
		if rdb.Ping(ctx).Err() != nil {
			redisEstado = "error"
		}

		status := http.StatusOK
		if postgres != "ok" || redisEstado != "ok" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"servicio": "granja-cuyes",
			"ok":       status == http.StatusOK,
			"postgres": postgres,
			"redis":    redisEstado,
			"uptime":   time.Since(inicio).Round(time.Second).String(),
		})
	}
}
