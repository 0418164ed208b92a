package cart

import (
	"encoding/json"
	"log"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"primos.GO/catalog"
)

// decodeLines reads persisted cart JSON, tolerating legacy shapes: a
// numeric "preco", quantities stored as strings, and lines without
// "precoRaw". Undecodable lines are dropped with a warning.
func decodeLines(raw string) []Line {
	var rows []map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		log.Printf("[warn] cart decode: %v", err)
		return nil
	}

	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		line, err := decodeLine(row)
		if err != nil {
			log.Printf("[warn] cart decode line: %v", err)
			continue
		}
		if line.Code == "" || line.Quantity < 1 {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func decodeLine(row map[string]interface{}) (Line, error) {
	var line Line
	cfg := &mapstructure.DecoderConfig{
		DecodeHook:       numberToPriceHook(),
		WeaklyTypedInput: true,
		Result:           &line,
		TagName:          "mapstructure",
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return Line{}, err
	}
	if err := dec.Decode(row); err != nil {
		return Line{}, err
	}
	// Legacy lines stored the raw number in "preco": recover a display
	// string and keep the numeric value in PriceRaw.
	if line.PriceRaw == 0 && line.Price != "" {
		if v, err := catalog.CleanPrice(line.Price); err == nil {
			line.PriceRaw = v
		}
	}
	if line.PriceRaw != 0 && line.Price == "" {
		line.Price = catalog.FormatPrice(line.PriceRaw)
	}
	return line, nil
}

// numberToPriceHook renders a numeric "preco" as the store's display
// format instead of the strconv default.
func numberToPriceHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() == reflect.Float64 && to.Kind() == reflect.String {
			return catalog.FormatPrice(data.(float64)), nil
		}
		if from.Kind() == reflect.String && to.Kind() == reflect.Float64 {
			s := data.(string)
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				return v, nil
			}
			if v, err := catalog.CleanPrice(s); err == nil {
				return v, nil
			}
			return 0.0, nil
		}
		return data, nil
	}
}
