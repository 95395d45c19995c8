package model

import (
	"reflect"
	"testing"
)

func TestDailyRatesRows(t *testing.T) {
	d := &DailyRates{Valute: map[string]Quote{
		"USD": {CharCode: "USD", Value: 99.4555, Nominal: 1},
		"AMD": {CharCode: "AMD", Value: 25.1104, Nominal: 100},
		"EUR": {CharCode: "EUR", Value: 104.3024, Nominal: 1},
	}}
	rows := d.Rows("2023-10-05")

	want := []RateRow{
		{Date: "2023-10-05", Code: "AMD", Value: 25.1104, Nominal: 100},
		{Date: "2023-10-05", Code: "EUR", Value: 104.3024, Nominal: 1},
		{Date: "2023-10-05", Code: "USD", Value: 99.4555, Nominal: 1},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %+v, want %+v", rows, want)
	}
}

func TestDailyRatesRowsEmpty(t *testing.T) {
	d := &DailyRates{}
	if rows := d.Rows("2023-10-05"); len(rows) != 0 {
		t.Errorf("rows = %+v, want empty", rows)
	}
}
