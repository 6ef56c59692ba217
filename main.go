// Package main property rental API.
//
// @title           Rental API
// @version         1.0
// @description     Property listings, bookings, reviews and wishlists for guests, hosts and admins.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/nilaw2017/rental-server/app/echoServer"
	authctrl "github.com/nilaw2017/rental-server/app/echoServer/controller/auth"
	bookingctrl "github.com/nilaw2017/rental-server/app/echoServer/controller/booking"
	catalogctrl "github.com/nilaw2017/rental-server/app/echoServer/controller/catalog"
	paymentctrl "github.com/nilaw2017/rental-server/app/echoServer/controller/payment"
	propertyctrl "github.com/nilaw2017/rental-server/app/echoServer/controller/property"
	reviewctrl "github.com/nilaw2017/rental-server/app/echoServer/controller/review"
	wishlistctrl "github.com/nilaw2017/rental-server/app/echoServer/controller/wishlist"
	"github.com/nilaw2017/rental-server/app/echoServer/validation"
	"github.com/nilaw2017/rental-server/config"
	bookingrepo "github.com/nilaw2017/rental-server/repository/booking"
	catalogrepo "github.com/nilaw2017/rental-server/repository/catalog"
	propertyrepo "github.com/nilaw2017/rental-server/repository/property"
	reviewrepo "github.com/nilaw2017/rental-server/repository/review"
	"github.com/nilaw2017/rental-server/repository/session"
	userrepo "github.com/nilaw2017/rental-server/repository/user"
	wishlistrepo "github.com/nilaw2017/rental-server/repository/wishlist"
	authsvc "github.com/nilaw2017/rental-server/service/auth"
	bookingsvc "github.com/nilaw2017/rental-server/service/booking"
	catalogsvc "github.com/nilaw2017/rental-server/service/catalog"
	propertysvc "github.com/nilaw2017/rental-server/service/property"
	reviewsvc "github.com/nilaw2017/rental-server/service/review"
	wishlistsvc "github.com/nilaw2017/rental-server/service/wishlist"
	"github.com/nilaw2017/rental-server/util/database"
	"github.com/nilaw2017/rental-server/util/filestore"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: pgx pool
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Error("schema bootstrap failed", "err", err)
		os.Exit(1)
	}

	// refresh-token sessions
	rdb := session.NewRedis(cfg.RedisURL)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("redis connect failed", "err", err, "addr", cfg.RedisURL)
		os.Exit(1)
	}
	defer rdb.Close()

	files, err := filestore.NewDisk(cfg.UploadDir)
	if err != nil {
		log.Error("upload dir unavailable", "err", err, "dir", cfg.UploadDir)
		os.Exit(1)
	}

	// repos
	ur := userrepo.New(db)
	pr := propertyrepo.New(db)
	br := bookingrepo.New(db)
	rr := reviewrepo.New(db)
	cr := catalogrepo.New(db)
	wr := wishlistrepo.New(db)
	sessions := session.New(rdb)

	// services
	as := authsvc.New(ur, sessions, authsvc.Tokens{
		Secret:          cfg.JWTSecret,
		RefreshSecret:   cfg.JWTRefreshSecret,
		AccessTTLHours:  cfg.AccessTTLHours,
		RefreshTTLHours: cfg.RefreshTTLHours,
	})
	ps := propertysvc.New(pr, files, cfg.UploadMaxBytes, log)
	bs := bookingsvc.New(db, br, pr)
	rs := reviewsvc.New(rr, br, pr)
	cs := catalogsvc.New(cr, time.Duration(cfg.CatalogCacheTTL)*time.Second)
	ws := wishlistsvc.New(wr, pr)

	// controllers
	val := validation.New()
	v := val.Engine()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	propertyC := &propertyctrl.Controller{Svc: ps, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: bs, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: rs, V: v, Log: log}
	catalogC := &catalogctrl.Controller{Svc: cs, V: v, Log: log}
	wishlistC := &wishlistctrl.Controller{Svc: ws, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e, log)
	e.Validator = val

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
			"env":     cfg.Env,
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		Property: propertyC,
		Booking:  bookingC,
		Payment:  paymentC,
		Review:   reviewC,
		Catalog:  catalogC,
		Wishlist: wishlistC,

		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
