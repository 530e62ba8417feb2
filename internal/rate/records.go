package rate

import (
	"fmt"

	"cbrrates/internal/adapters/xmltree"
	"cbrrates/internal/domain"
)

const (
	valuteField   = "Valute"
	charCodeField = "CharCode"
)

// RecordsFromDocument extracts the currency entries of a parsed daily feed.
func RecordsFromDocument(doc xmltree.Node) ([]domain.ExchangeRateRecord, error) {
	valute, err := xmltree.Field(doc, valuteField)
	if err != nil {
		return nil, err
	}

	items := xmltree.Items(valute)
	records := make([]domain.ExchangeRateRecord, 0, len(items))
	for i, item := range items {
		rec, recErr := recordFromNode(item)
		if recErr != nil {
			return nil, fmt.Errorf("%s #%d: %w", valuteField, i+1, recErr)
		}
		records = append(records, rec)
	}
	return records, nil
}

func recordFromNode(n xmltree.Node) (domain.ExchangeRateRecord, error) {
	obj, err := xmltree.AsObject(n)
	if err != nil {
		return domain.ExchangeRateRecord{}, err
	}

	fields := make(map[string]string, obj.Len())
	for _, key := range obj.Keys() {
		v, _ := obj.Get(key)
		if s, strErr := xmltree.AsString(v); strErr == nil {
			fields[key] = s
		}
	}

	code, ok := fields[charCodeField]
	if !ok {
		return domain.ExchangeRateRecord{}, fmt.Errorf("%w: %q", domain.ErrMissingField, charCodeField)
	}

	return domain.ExchangeRateRecord{
		ID:           fields["ID"],
		CurrencyCode: code,
		NumCode:      fields["NumCode"],
		Name:         fields["Name"],
		Nominal:      fields["Nominal"],
		Value:        fields["Value"],
		Fields:       fields,
	}, nil
}
