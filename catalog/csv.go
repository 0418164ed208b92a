package catalog

import (
	"log"
	"strconv"
	"strings"
)

// CSV schema (final form): codigo;nome;categoria;preco;qt;descricao;marca;promocao;imagem
const minFields = 8

var requiredHeaders = []string{"codigo", "nome", "categoria", "preco", "qt"}

// Parse turns a semicolon-delimited CSV blob into valid products, silently
// skipping malformed rows. Empty or header-only input yields no products.
func Parse(text string) []Product {
	if text == "" {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil
	}

	// The header is inspected, not enforced against row shape.
	headers := splitFields(lines[0])
	for i := range headers {
		headers[i] = strings.ToLower(headers[i])
	}
	for _, req := range requiredHeaders {
		if !contains(headers, req) {
			log.Printf("[warn] catalog csv: header missing %q column", req)
		}
	}

	products := make([]Product, 0, len(lines)-1)
	for _, line := range lines[1:] {
		p, ok := ParseLine(line)
		if !ok {
			continue
		}
		products = append(products, p)
	}
	return products
}

// ParseLine parses one data row. ok is false for malformed rows: too few
// fields, a missing required field, or a price/stock that fails numeric
// parse.
func ParseLine(line string) (Product, bool) {
	parts := splitFields(line)
	if len(parts) < minFields {
		return Product{}, false
	}

	codigo, nome, categoria, preco, qt := parts[0], parts[1], parts[2], parts[3], parts[4]
	if codigo == "" || nome == "" || categoria == "" || preco == "" || qt == "" {
		return Product{}, false
	}

	precoNum, err := ParsePrice(preco)
	if err != nil {
		return Product{}, false
	}
	qtNum, err := strconv.Atoi(qt)
	if err != nil || qtNum < 0 {
		return Product{}, false
	}

	p := Product{
		Code:        codigo,
		Name:        nome,
		Category:    strings.ToLower(categoria),
		PriceRaw:    precoNum,
		Price:       FormatPrice(precoNum),
		Stock:       qtNum,
		Description: parts[5],
		Brand:       parts[6],
		OnPromotion: strings.ToLower(parts[7]) == "sim",
	}
	if len(parts) > 8 {
		p.Image = parts[8]
	}
	return p, true
}

func splitFields(line string) []string {
	parts := strings.Split(line, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
