package repository

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// decodeDocument converte os campos de um documento do store para o registro tipado,
// usando as mesmas tags "firestore" dos records.
func decodeDocument(fields map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "firestore",
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			timeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(fields); err != nil {
		return fmt.Errorf("erro ao decodificar documento: %w", err)
	}

	return nil
}

// timeHook aceita time.Time e *time.Time vindos de qualquer backend.
func timeHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}

	switch v := data.(type) {
	case time.Time:
		return v.UTC(), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, nil
		}
		return v.UTC(), nil
	}

	return data, nil
}
