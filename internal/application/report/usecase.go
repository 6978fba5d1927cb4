// Package report arma los relatórios de estoque, entradas y saídas como datos;
// el maquetado (PDF, impresión) queda en la capa de presentación.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-sync/internal/application/dto"
	"github.com/jhoicas/Estoque-sync/internal/domain"
	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
	"github.com/jhoicas/Estoque-sync/pkg/money"
)

// AllBrands marca que desactiva el filtro.
const AllBrands = "TODAS"

var (
	ErrNoProducts = fmt.Errorf("%w: nenhum produto para gerar relatório", domain.ErrNotFound)
	ErrNoEntradas = fmt.Errorf("%w: nenhuma entrada para gerar relatório", domain.ErrNotFound)
	ErrNoSaidas   = fmt.Errorf("%w: nenhuma saída para gerar relatório", domain.ErrNotFound)
)

// Source lectura del estado sincronizado (implementado por estoque.Service).
type Source interface {
	Products() []entity.Product
	Movements() entity.MovementHistory
}

// UseCase genera los relatórios a partir de la cache.
type UseCase struct {
	src Source
	loc *time.Location
	now func() time.Time
}

// NewUseCase construye el caso de uso. loc nil usa la zona local.
func NewUseCase(src Source, loc *time.Location) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{src: src, loc: loc, now: time.Now}
}

// ── Estoque ───────────────────────────────────────────────────────────────────

// Stock relatório de estoque filtrado por marca.
func (uc *UseCase) Stock(marca string) (*dto.StockReportDTO, error) {
	marca = normalizeBrand(marca)

	var selected []entity.Product
	for _, p := range uc.src.Products() {
		if marca == AllBrands || p.Marca == marca {
			selected = append(selected, p)
		}
	}
	if len(selected) == 0 {
		return nil, ErrNoProducts
	}

	byBrand := map[string][]entity.Product{}
	var brands []string
	if marca == AllBrands {
		for _, p := range selected {
			if _, ok := byBrand[p.Marca]; !ok {
				brands = append(brands, p.Marca)
			}
			byBrand[p.Marca] = append(byBrand[p.Marca], p)
		}
		sort.Strings(brands)
	} else {
		brands = []string{marca}
		byBrand[marca] = selected
	}

	out := &dto.StockReportDTO{Marca: marca, GeradoEm: uc.now().In(uc.loc)}
	total := decimal.Zero
	qty := 0
	for _, b := range brands {
		items := byBrand[b]
		sortByCodigo(items)
		group := dto.StockGroupDTO{Marca: b, Itens: make([]dto.StockRowDTO, 0, len(items))}
		for _, p := range items {
			row := stockRow(p)
			group.Itens = append(group.Itens, row)
			total = total.Add(row.ValorTotal)
			qty += p.Quantidade
		}
		out.Grupos = append(out.Grupos, group)
	}
	out.Totais = dto.StockTotalsDTO{
		Produtos:   len(selected),
		Quantidade: qty,
		Valor:      total.Round(2),
		ValorFmt:   money.Format(total),
	}
	return out, nil
}

func stockRow(p entity.Product) dto.StockRowDTO {
	ncm := p.NCM
	if ncm == "" {
		ncm = "-"
	}
	vt := p.ValorTotal()
	return dto.StockRowDTO{
		Codigo:           p.Codigo.String(),
		Modelo:           p.CodigoFornecedor,
		NCM:              ncm,
		Descricao:        p.Descricao,
		Unidade:          p.UnidadeOrDefault(),
		Quantidade:       p.Quantidade,
		ValorUnitario:    p.ValorUnitario,
		ValorTotal:       vt,
		ValorUnitarioFmt: money.Format(p.ValorUnitario),
		ValorTotalFmt:    money.Format(vt),
	}
}

// sortByCodigo orden numérico; codigos no numéricos al final, en orden de texto.
func sortByCodigo(items []entity.Product) {
	sort.SliceStable(items, func(i, j int) bool {
		a, aok := items[i].Codigo.Int()
		b, bok := items[j].Codigo.Int()
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		default:
			return items[i].Codigo < items[j].Codigo
		}
	})
}

// ── Movimentos ───────────────────────────────────────────────────────────────

// Entradas relatório de entradas agrupado por mes.
func (uc *UseCase) Entradas(marca string) (*dto.MovementReportDTO, error) {
	return uc.movements(entity.MovementEntrada, uc.src.Movements().Entradas, marca, ErrNoEntradas)
}

// Saidas relatório de saídas agrupado por mes.
func (uc *UseCase) Saidas(marca string) (*dto.MovementReportDTO, error) {
	return uc.movements(entity.MovementSaida, uc.src.Movements().Saidas, marca, ErrNoSaidas)
}

type monthKey struct {
	year  int
	month time.Month
}

// movements descarta movimentos de produtos desconocidos (no hay marca para filtrar).
func (uc *UseCase) movements(tipo entity.MovementType, list []entity.Movement, marca string, empty error) (*dto.MovementReportDTO, error) {
	marca = normalizeBrand(marca)

	products := map[string]entity.Product{}
	for _, p := range uc.src.Products() {
		products[p.ID] = p
	}

	groups := map[monthKey][]dto.MovementRowDTO{}
	var keys []monthKey
	total := 0
	for _, m := range list {
		p, ok := products[m.ProdutoID]
		if !ok {
			continue
		}
		if marca != AllBrands && p.Marca != marca {
			continue
		}
		at := m.Data.In(uc.loc)
		k := monthKey{at.Year(), at.Month()}
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], dto.MovementRowDTO{
			Codigo:     p.Codigo.String(),
			Modelo:     p.CodigoFornecedor,
			Marca:      p.Marca,
			Quantidade: m.Quantidade,
			Data:       at,
			DataFmt:    at.Format("02/01/2006 15:04:05"),
		})
		total += m.Quantidade
	}
	if len(keys) == 0 {
		return nil, empty
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year > keys[j].year
		}
		return keys[i].month > keys[j].month
	})

	out := &dto.MovementReportDTO{
		Tipo:     string(tipo),
		Marca:    marca,
		GeradoEm: uc.now().In(uc.loc),
		Total:    total,
	}
	for _, k := range keys {
		out.Meses = append(out.Meses, dto.MovementMonthDTO{Mes: monthLabel(k.year, k.month), Itens: groups[k]})
	}
	return out, nil
}

// monthLabel etiqueta del mes, ej: "Outubro de 2026".
func monthLabel(year int, month time.Month) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s de %d", months[month-1], year)
}

func normalizeBrand(marca string) string {
	if marca == "" {
		return AllBrands
	}
	return marca
}
