// seed puebla la base con datos de demo: usuarios (admin, operario y cuentas
// atadas a empresa), registros de stock y movimientos de salida para que las
// métricas tengan señal desde el primer arranque.
//
// Uso: go run ./cmd/seed
// Idempotente a nivel usuarios (se saltan los existentes); los movimientos se
// aplican solo si la tabla de stock está vacía.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/trace-warehouse/internal/application/auth"
	"github.com/jhoicas/trace-warehouse/internal/application/dto"
	"github.com/jhoicas/trace-warehouse/internal/application/inventory"
	"github.com/jhoicas/trace-warehouse/internal/domain"
	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
	"github.com/jhoicas/trace-warehouse/internal/infrastructure/postgres"
	"github.com/jhoicas/trace-warehouse/pkg/config"
	"github.com/jhoicas/trace-warehouse/pkg/logger"
)

type seedUser struct {
	username string
	password string
	role     string
	fullName string
	company  string
}

type seedItem struct {
	sku         string
	description string
	quantity    int64
	location    string
	status      string
	supplier    string
	ageDays     int
}

var seedUsers = []seedUser{
	{username: "admin", password: "admin123", role: entity.RoleAdmin, fullName: "Warehouse Admin"},
	{username: "worker", password: "worker123", role: entity.RoleWorker, fullName: "Floor Worker"},
	{username: "acme", password: "acme123", role: entity.RoleWorker, fullName: "ACME Account", company: "ACME Corp"},
	{username: "globex", password: "globex123", role: entity.RoleWorker, fullName: "Globex Account", company: "Globex"},
}

var seedItems = []seedItem{
	{sku: "SKU-1001", description: "Industrial Bearings", quantity: 240, location: "Zone A-1", status: entity.StatusReleased, supplier: "ACME Corp", ageDays: 12},
	{sku: "SKU-1002", description: "Hydraulic Pumps", quantity: 80, location: "Zone A-2", status: entity.StatusReleased, supplier: "ACME Corp", ageDays: 45},
	{sku: "SKU-2001", description: "Steel Plates", quantity: 320, location: "Zone B-1", status: entity.StatusRetained, supplier: "Globex", ageDays: 30},
	{sku: "SKU-2002", description: "Copper Coils", quantity: 150, location: "Zone B-2", status: entity.StatusReleased, supplier: "Globex", ageDays: 8},
	{sku: "SKU-3001", description: "Safety Valves", quantity: 60, location: "Zone C-1", status: entity.StatusQuarantine, supplier: "Initech", ageDays: 95},
	{sku: "SKU-3002", description: "Rubber Seals", quantity: 500, location: "Zone C-3", status: entity.StatusReleased, supplier: "Initech", ageDays: 5},
	{sku: "SKU-9001", description: "Packing Foam", quantity: 90, location: "Dock 4", status: entity.StatusReleased, supplier: "ACME Corp", ageDays: 120},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	userRepo := postgres.NewUserRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	applyUC := inventory.NewApplyMovementUseCase(txRunner)

	for _, u := range seedUsers {
		_, err := authUC.CreateUser(dto.CreateUserRequest{
			Username:      u.username,
			Password:      u.password,
			Role:          u.role,
			FullName:      u.fullName,
			LinkedCompany: u.company,
		})
		switch {
		case err == nil:
			log.Info().Str("username", u.username).Msg("usuario creado")
		case err == domain.ErrDuplicate:
			log.Info().Str("username", u.username).Msg("usuario ya existe, se omite")
		default:
			log.Fatal().Err(err).Str("username", u.username).Msg("crear usuario")
		}
	}

	existing, err := stockRepo.ListByScope(scope.Open())
	if err != nil {
		log.Fatal().Err(err).Msg("consultar stock")
	}
	if len(existing) > 0 {
		log.Info().Int("records", len(existing)).Msg("stock ya poblado, se omiten movimientos")
		return
	}

	now := time.Now()
	for _, item := range seedItems {
		entryDate := now.AddDate(0, 0, -item.ageDays)
		_, err := applyUC.ApplyMovement(ctx, scope.Open(), inventory.MovementInput{
			Type:        entity.MovementTypeIN,
			SKU:         item.sku,
			Quantity:    item.quantity,
			Description: item.description,
			Location:    item.location,
			Status:      item.status,
			Supplier:    item.supplier,
			EntryDate:   &entryDate,
			DocumentRef: "SEED",
		})
		if err != nil {
			log.Fatal().Err(err).Str("sku", item.sku).Msg("sembrar stock")
		}
	}
	log.Info().Int("records", len(seedItems)).Msg("stock sembrado")

	// Salidas chicas sobre los SKUs de más rotación para que la serie
	// diaria y las predicciones tengan señal desde el primer arranque.
	for round := 0; round < 7; round++ {
		for _, item := range seedItems[:3] {
			_, err := applyUC.ApplyMovement(ctx, scope.Open(), inventory.MovementInput{
				Type:        entity.MovementTypeOUT,
				SKU:         item.sku,
				Quantity:    2,
				Description: fmt.Sprintf("Demo dispatch %d", round+1),
				DocumentRef: "SEED",
			})
			if err != nil {
				log.Fatal().Err(err).Str("sku", item.sku).Msg("sembrar salida")
			}
		}
	}
	log.Info().Msg("movimientos de demo sembrados")
}
