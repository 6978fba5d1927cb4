package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReportDTO respuesta de GET /api/relatorios/estoque.
// Con marca TODAS hay un grupo por marca (orden alfabético); con una marca, un único grupo.
type StockReportDTO struct {
	Marca    string          `json:"marca"`
	GeradoEm time.Time       `json:"gerado_em"`
	Grupos   []StockGroupDTO `json:"grupos"`
	Totais   StockTotalsDTO  `json:"totais"`
}

// StockGroupDTO produtos de una marca ordenados por codigo numérico.
type StockGroupDTO struct {
	Marca string        `json:"marca"`
	Itens []StockRowDTO `json:"itens"`
}

// StockRowDTO una línea del relatório de estoque.
type StockRowDTO struct {
	Codigo           string          `json:"codigo"`
	Modelo           string          `json:"modelo"` // codigo_fornecedor
	NCM              string          `json:"ncm"`    // "-" si no informado
	Descricao        string          `json:"descricao"`
	Unidade          string          `json:"unidade"`
	Quantidade       int             `json:"quantidade"`
	ValorUnitario    decimal.Decimal `json:"valor_unitario"`
	ValorTotal       decimal.Decimal `json:"valor_total"`
	ValorUnitarioFmt string          `json:"valor_unitario_fmt"` // "R$ 1.234,56"
	ValorTotalFmt    string          `json:"valor_total_fmt"`
}

// StockTotalsDTO totales del relatório.
type StockTotalsDTO struct {
	Produtos   int             `json:"produtos"`
	Quantidade int             `json:"quantidade"`
	Valor      decimal.Decimal `json:"valor"`
	ValorFmt   string          `json:"valor_fmt"`
}

// MovementReportDTO respuesta de GET /api/relatorios/entradas y /saidas.
type MovementReportDTO struct {
	Tipo     string             `json:"tipo"`
	Marca    string             `json:"marca"`
	GeradoEm time.Time          `json:"gerado_em"`
	Meses    []MovementMonthDTO `json:"meses"` // más reciente primero
	Total    int                `json:"total"`
}

// MovementMonthDTO movimentos de un mes, ej: "Outubro de 2026".
type MovementMonthDTO struct {
	Mes   string           `json:"mes"`
	Itens []MovementRowDTO `json:"itens"`
}

// MovementRowDTO una línea del relatório de movimentos.
type MovementRowDTO struct {
	Codigo     string    `json:"codigo"`
	Modelo     string    `json:"modelo"`
	Marca      string    `json:"marca"`
	Quantidade int       `json:"quantidade"`
	Data       time.Time `json:"data"`
	DataFmt    string    `json:"data_fmt"` // "19/10/2026 09:00:00"
}
