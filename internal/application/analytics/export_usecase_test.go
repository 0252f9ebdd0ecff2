package analytics_test

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/trace-warehouse/internal/application/analytics"
	"github.com/jhoicas/trace-warehouse/internal/application/dto"
	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportUseCase(rows []repository.StockMetricsRow, movRepo *fakeMovementRepo) *analytics.ExportUseCase {
	reads := fakeReadRunner{repo: &fakeAnalyticsRepo{rows: rows}}
	return analytics.NewExportUseCase(reads, movRepo, nil)
}

func TestStockSnapshotCSV(t *testing.T) {
	entry := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	rows := []repository.StockMetricsRow{
		{SKU: "SKU-1", Description: "Bearings, steel", Quantity: 12, Location: "Zone A-1",
			Status: entity.StatusReleased, Supplier: "ACME Corp", EntryDate: &entry},
		{SKU: "SKU-2", Description: "Foam", Quantity: 3, Location: "Dock 4",
			Status: entity.StatusQuarantine, Supplier: "Globex"},
	}
	uc := newExportUseCase(rows, &fakeMovementRepo{})

	data, err := uc.StockSnapshotCSV(context.Background(), scope.Open(), false)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "SKU,Description,Quantity,Location,Status,Supplier,Entry Date", lines[0])
	assert.Equal(t, `SKU-1,"Bearings, steel",12,Zone A-1,Released,ACME Corp,2026-07-01`, lines[1],
		"las comas dentro de campos van entre comillas")
	assert.Equal(t, "SKU-2,Foam,3,Dock 4,Quarantine,Globex,", lines[2],
		"sin fecha de ingreso el campo queda vacío")
}

// La variante Latin-1 produce bytes fuera de UTF-8 para caracteres acentuados.
func TestStockSnapshotCSV_Latin1(t *testing.T) {
	rows := []repository.StockMetricsRow{
		{SKU: "SKU-Ñ", Description: "Cañería", Quantity: 1, Location: "General", Status: entity.StatusReleased},
	}
	uc := newExportUseCase(rows, &fakeMovementRepo{})

	data, err := uc.StockSnapshotCSV(context.Background(), scope.Open(), true)
	require.NoError(t, err)

	assert.False(t, utf8.Valid(data), "la salida Latin-1 no es UTF-8 válido")
	assert.Contains(t, string(data), "Ca\xf1er\xeda", "ñ y í como bytes Latin-1")
}

func TestMovementHistoryCSV(t *testing.T) {
	ts := time.Date(2026, 8, 20, 9, 15, 30, 0, time.UTC)
	movRepo := &fakeMovementRepo{movements: []*entity.Movement{
		{ID: 1, Type: entity.MovementTypeOUT, SKU: "SKU-1", Quantity: 4,
			Details: "Manual Exit", DocumentRef: "Manual Entry", Timestamp: ts},
	}}
	uc := newExportUseCase(nil, movRepo)

	data, err := uc.MovementHistoryCSV(context.Background(), scope.Open(), dto.SearchMovementsRequest{}, false)
	require.NoError(t, err)

	assert.Equal(t, repository.MaxExportRows, movRepo.lastFilter.Limit, "la exportación se acota a 1000 filas")

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Time,Type,SKU,Quantity,Details,Reference", lines[0])
	assert.Equal(t, "2026-08-20,09:15:30,OUT,SKU-1,4,Manual Exit,Manual Entry", lines[1])
}
