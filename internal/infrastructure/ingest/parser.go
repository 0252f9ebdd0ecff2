// Package ingest extrae líneas candidatas de importación desde documentos
// de proveedores (remitos XML o planillas CSV). El resultado se devuelve al
// cliente para revisión; nada se persiste hasta la confirmación.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/jhoicas/trace-warehouse/internal/application/dto"
	"github.com/jhoicas/trace-warehouse/internal/domain"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ParseDocument detecta el formato por extensión y extrae las líneas.
// Documentos que no son UTF-8 válido se decodifican como Latin-1 (los ERP
// legados suelen exportar en ISO-8859-1).
func ParseDocument(filename string, data []byte) ([]dto.ImportItem, error) {
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("decodificar documento: %w", err)
		}
		data = decoded
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xml":
		return parseXML(data)
	case ".csv":
		return parseCSV(data)
	default:
		return nil, domain.ErrInvalidInput
	}
}

// parseXML extrae los elementos Item de un remito XML, en cualquier nivel
// del árbol. Acepta los alias de tag habituales de los remitos de
// proveedores: SKU/ID, Description/Name, Quantity/Qty.
func parseXML(data []byte) ([]dto.ImportItem, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsear XML: %w", err)
	}

	elements := doc.FindElements("//Item")
	items := make([]dto.ImportItem, 0, len(elements))
	for _, el := range elements {
		item := dto.ImportItem{
			SKU:         childText(el, "SKU", "ID"),
			Description: childText(el, "Description", "Name"),
			Supplier:    childText(el, "Supplier"),
			Location:    childText(el, "Location"),
		}
		if item.SKU == "" {
			item.SKU = strings.TrimSpace(el.SelectAttrValue("sku", ""))
		}
		qty, err := parseQuantity(childText(el, "Quantity", "Qty"))
		if err != nil {
			return nil, err
		}
		item.Quantity = qty
		if item.SKU == "" {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	return items, nil
}

// parseCSV extrae líneas de una planilla con encabezado. Las columnas se
// resuelven por nombre sin distinguir mayúsculas; sku y quantity son
// obligatorias.
func parseCSV(data []byte) ([]dto.ImportItem, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsear CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, domain.ErrInvalidInput
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	skuIdx, ok := cols["sku"]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	qtyIdx, ok := cols["quantity"]
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	items := make([]dto.ImportItem, 0, len(records)-1)
	for _, rec := range records[1:] {
		item := dto.ImportItem{
			SKU:         field(rec, skuIdx),
			Description: fieldByName(rec, cols, "description"),
			Supplier:    fieldByName(rec, cols, "supplier"),
			Location:    fieldByName(rec, cols, "location"),
		}
		qty, err := parseQuantity(field(rec, qtyIdx))
		if err != nil {
			return nil, err
		}
		item.Quantity = qty
		if item.SKU == "" {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, item)
	}
	return items, nil
}

// childText devuelve el texto del primer hijo que matchee alguno de los tags.
func childText(el *etree.Element, tags ...string) string {
	for _, tag := range tags {
		if child := el.SelectElement(tag); child != nil {
			return strings.TrimSpace(child.Text())
		}
	}
	return ""
}

func parseQuantity(raw string) (int64, error) {
	qty, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || qty <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return qty, nil
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func fieldByName(rec []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok {
		return ""
	}
	return field(rec, idx)
}
