package xmlexport_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/xmlexport"
)

func TestExport_DocumentoCompleto(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	movements := []*entity.StockMovement{
		{
			ID:            "m-1",
			StockID:       "s-1",
			Amount:        -3,
			OperationType: entity.OperationOrderCompletion,
			SourceType:    entity.SourceTypeOrder,
			SourceID:      "o-1",
			Reason:        "Finalización del pedido #o-1",
			UserID:        "u-1",
			CreatedAt:     at,
		},
		{
			ID:            "m-2",
			StockID:       "s-1",
			Amount:        3,
			OperationType: entity.OperationOrderCancellation,
			SourceType:    entity.SourceTypeOrder,
			SourceID:      "o-1",
			CreatedAt:     at.Add(time.Hour),
		},
	}

	data, err := xmlexport.NewMovementExporter().Export(movements, at)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))

	root := doc.SelectElement("StockMovements")
	require.NotNil(t, root)
	assert.Equal(t, "2", root.SelectAttrValue("count", ""))
	assert.Equal(t, "2026-08-30T12:00:00Z", root.SelectAttrValue("generatedAt", ""))

	nodes := root.SelectElements("Movement")
	require.Len(t, nodes, 2)

	first := nodes[0]
	assert.Equal(t, "m-1", first.SelectAttrValue("id", ""))
	assert.Equal(t, "-3", first.SelectElement("Amount").Text())
	assert.Equal(t, "order_completion", first.SelectElement("OperationType").Text())
	assert.Equal(t, "order", first.SelectElement("Source").SelectAttrValue("type", ""))
	assert.Equal(t, "o-1", first.SelectElement("Source").Text())
	assert.Equal(t, "Finalización del pedido #o-1", first.SelectElement("Reason").Text())

	// Los campos opcionales vacíos se omiten.
	second := nodes[1]
	assert.Nil(t, second.SelectElement("Reason"))
	assert.Nil(t, second.SelectElement("UserID"))
}

func TestExport_Vacio(t *testing.T) {
	data, err := xmlexport.NewMovementExporter().Export(nil, time.Now())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	root := doc.SelectElement("StockMovements")
	require.NotNil(t, root)
	assert.Equal(t, "0", root.SelectAttrValue("count", ""))
	assert.Empty(t, root.SelectElements("Movement"))
}
