package analytics

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/jhoicas/trace-warehouse/internal/application/dto"
	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ExportUseCase exportaciones del snapshot de stock y del historial de
// movimientos: CSV (UTF-8 o Latin-1 para hojas de cálculo legadas) y PDF.
type ExportUseCase struct {
	reads   ReadRunner
	movRepo repository.MovementRepository
	reports ReportGenerator
}

// NewExportUseCase construye el caso de uso de exportación.
func NewExportUseCase(reads ReadRunner, movRepo repository.MovementRepository, reports ReportGenerator) *ExportUseCase {
	return &ExportUseCase{reads: reads, movRepo: movRepo, reports: reports}
}

// StockSnapshotCSV exporta la proyección de stock visible bajo el scope.
func (uc *ExportUseCase) StockSnapshotCSV(ctx context.Context, sc scope.Scope, latin1 bool) ([]byte, error) {
	var rows []repository.StockMetricsRow
	err := uc.reads.Read(ctx, func(repo repository.AnalyticsRepository) error {
		var err error
		rows, err = repo.StockRows(ctx, sc)
		return err
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"SKU", "Description", "Quantity", "Location", "Status", "Supplier", "Entry Date"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		entryDate := ""
		if r.EntryDate != nil {
			entryDate = r.EntryDate.Format("2006-01-02")
		}
		record := []string{
			r.SKU,
			r.Description,
			strconv.FormatInt(r.Quantity, 10),
			r.Location,
			r.Status,
			r.Supplier,
			entryDate,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return encodeCSV(buf.Bytes(), latin1)
}

// MovementHistoryCSV exporta el historial filtrado, acotado a 1000 filas.
func (uc *ExportUseCase) MovementHistoryCSV(ctx context.Context, sc scope.Scope, req dto.SearchMovementsRequest, latin1 bool) ([]byte, error) {
	filter, err := buildFilter(req, repository.MaxExportRows)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.Search(sc, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Date", "Time", "Type", "SKU", "Quantity", "Details", "Reference"}); err != nil {
		return nil, err
	}
	for _, m := range movs {
		record := []string{
			m.Timestamp.Format("2006-01-02"),
			m.Timestamp.Format("15:04:05"),
			m.Type,
			m.SKU,
			strconv.FormatInt(m.Quantity, 10),
			m.Details,
			m.DocumentRef,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return encodeCSV(buf.Bytes(), latin1)
}

// StockSnapshotPDF genera el reporte PDF del snapshot de stock.
func (uc *ExportUseCase) StockSnapshotPDF(ctx context.Context, sc scope.Scope) ([]byte, error) {
	var rows []repository.StockMetricsRow
	err := uc.reads.Read(ctx, func(repo repository.AnalyticsRepository) error {
		var err error
		rows, err = repo.StockRows(ctx, sc)
		return err
	})
	if err != nil {
		return nil, err
	}
	title := "Stock Snapshot"
	if sc.Restricted() {
		title = "Stock Snapshot - " + sc.Tenant()
	}
	return uc.reports.GenerateSnapshotPDF(title, rows)
}

// encodeCSV re-codifica el CSV a Latin-1 cuando el cliente lo pide; los
// caracteres fuera del charset se reemplazan por el byte de sustitución.
func encodeCSV(data []byte, latin1 bool) ([]byte, error) {
	if !latin1 {
		return data, nil
	}
	enc := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	out, _, err := transform.Bytes(enc, data)
	if err != nil {
		return nil, err
	}
	return out, nil
}
