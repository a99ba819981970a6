// Package xmlexport serializa el historial de movimientos de stock como
// documento XML de auditoría, apto para archivado o intercambio con sistemas
// contables externos.
package xmlexport

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// MovementExporter genera el XML de auditoría de movimientos.
type MovementExporter struct{}

// NewMovementExporter construye el exportador.
func NewMovementExporter() *MovementExporter { return &MovementExporter{} }

// Export serializa los movimientos en orden recibido. El documento lleva la
// fecha de generación y el total de registros como atributos de la raíz.
func (e *MovementExporter) Export(movements []*entity.StockMovement, generatedAt time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("StockMovements")
	root.CreateAttr("generatedAt", generatedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("count", strconv.Itoa(len(movements)))

	for _, m := range movements {
		node := root.CreateElement("Movement")
		node.CreateAttr("id", m.ID)

		node.CreateElement("StockID").SetText(m.StockID)
		node.CreateElement("Amount").SetText(strconv.FormatInt(m.Amount, 10))
		node.CreateElement("OperationType").SetText(m.OperationType)

		source := node.CreateElement("Source")
		source.CreateAttr("type", m.SourceType)
		source.SetText(m.SourceID)

		if m.Reason != "" {
			node.CreateElement("Reason").SetText(m.Reason)
		}
		if m.UserID != "" {
			node.CreateElement("UserID").SetText(m.UserID)
		}
		node.CreateElement("CreatedAt").SetText(m.CreatedAt.UTC().Format(time.RFC3339))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar movimientos: %w", err)
	}
	return out, nil
}
