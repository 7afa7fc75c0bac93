package validate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderReq struct {
	OrderID  string      `json:"order_id" validate:"required"`
	Amount   json.Number `json:"amount" validate:"required,amount"`
	Currency string      `json:"currency" validate:"omitempty,currency"`
	Hook     string      `json:"callback_url" validate:"omitempty,url"`
}

func TestStruct(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		in     orderReq
		fields []string
	}{
		{name: "valid", in: orderReq{OrderID: "A", Amount: "100.12345678", Currency: "USDT", Hook: "https://x.example/cb"}},
		{name: "missing", in: orderReq{}, fields: []string{"order_id", "amount"}},
		{name: "negative amount", in: orderReq{OrderID: "A", Amount: "-1"}, fields: []string{"amount"}},
		{name: "too precise", in: orderReq{OrderID: "A", Amount: "0.123456789"}, fields: []string{"amount"}},
		{name: "bad currency", in: orderReq{OrderID: "A", Amount: "1", Currency: "US-DT"}, fields: []string{"currency"}},
		{name: "bad url", in: orderReq{OrderID: "A", Amount: "1", Hook: "not a url"}, fields: []string{"callback_url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(v, tt.in)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			errs, ok := err.(Errs)
			require.True(t, ok)
			var got []string
			for _, ef := range errs {
				got = append(got, ef.Field)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestErrs_Error(t *testing.T) {
	e := Errs{{Field: "a", Msg: "required"}, {Field: "b", Msg: "bad"}}
	assert.Equal(t, "a: required; b: bad", e.Error())
}
