package main // Entry point package

import (
    "context"
    "log"

    "github.com/joho/godotenv"    // optional .env loading for local runs
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/hostel-room-booking/internal/config"
    "github.com/iliyamo/hostel-room-booking/internal/database"
    "github.com/iliyamo/hostel-room-booking/internal/engine"
    "github.com/iliyamo/hostel-room-booking/internal/handler"
    "github.com/iliyamo/hostel-room-booking/internal/model"
    "github.com/iliyamo/hostel-room-booking/internal/queue"
    "github.com/iliyamo/hostel-room-booking/internal/router"
    "github.com/iliyamo/hostel-room-booking/internal/store"
    "github.com/iliyamo/hostel-room-booking/internal/utils"
)

func main() {
    // .env is optional; environment variables win when both are present.
    if err := godotenv.Load(); err != nil {
        log.Println("no .env file found; using environment variables")
    }
    cfg := config.Load()

    st := store.New(openKV(cfg))

    eng, err := engine.New(context.Background(), st)
    if err != nil {
        log.Fatalf("load state: %v", err)
    }

    accounts, err := fixedAccounts(cfg)
    if err != nil {
        log.Fatalf("build accounts: %v", err)
    }

    e := echo.New()
    router.RegisterRoutes(e, handler.NewAuthHandler(cfg, accounts), handler.NewPublicHandler(eng), cfg.JWTSecret)
    router.RegisterStudent(e, handler.NewStudentHandler(eng), cfg.JWTSecret)
    router.RegisterAdmin(e, handler.NewAdminHandler(eng), cfg.JWTSecret)

    // Decision log consumer; runs its own reconnect loop forever.
    go func() {
        if err := queue.StartDecisionConsumer(); err != nil {
            log.Printf("decision consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s store=%s)", addr, cfg.Env, cfg.StoreDriver)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}

// openKV selects the persistence backend.  Redis and MySQL failures fall
// back to the in-memory backend so the demo always starts; state then lives
// only for the lifetime of the process.
func openKV(cfg config.Config) store.KV {
    switch cfg.StoreDriver {
    case "redis":
        if client := config.NewRedisClient(); client != nil {
            return store.NewRedis(client)
        }
        log.Println("redis unreachable; falling back to in-memory store")
    case "mysql":
        db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
        if err == nil {
            kv, merr := store.NewMySQL(context.Background(), db)
            if merr == nil {
                return kv
            }
            err = merr
        }
        log.Printf("mysql unavailable (%v); falling back to in-memory store", err)
    }
    return store.NewMemory()
}

// fixedAccounts builds the two hardcoded credential pairs.  Passwords are
// hashed at startup and never kept in plain form.
func fixedAccounts(cfg config.Config) ([]model.Account, error) {
    studentHash, err := utils.HashPassword(cfg.StudentPass, cfg.BcryptCost)
    if err != nil {
        return nil, err
    }
    adminHash, err := utils.HashPassword(cfg.AdminPass, cfg.BcryptCost)
    if err != nil {
        return nil, err
    }
    return []model.Account{
        {ID: "student-1", Username: cfg.StudentUser, PasswordHash: studentHash, Role: model.RoleStudent},
        {ID: "admin-1", Username: cfg.AdminUser, PasswordHash: adminHash, Role: model.RoleAdmin},
    }, nil
}
