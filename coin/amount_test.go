package coin

import (
	"math"
	"testing"

	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/treasurytest/assert"
)

func TestAdd(t *testing.T) {
	sum, err := Add(3, 4)
	assert.Nil(t, err)
	assert.Equal(t, uint64(7), sum)

	_, err = Add(math.MaxUint64, 1)
	assert.IsErr(t, errors.ErrOverflow, err)
}

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		raw      string
		decimals uint8
		want     uint64
		wantErr  *errors.Error
	}{
		"whole number": {
			raw:      "12",
			decimals: 2,
			want:     1200,
		},
		"fraction": {
			raw:      "1.5",
			decimals: 2,
			want:     150,
		},
		"no decimals": {
			raw:  "1000",
			want: 1000,
		},
		"smallest unit": {
			raw:      "0.000000001",
			decimals: 9,
			want:     1,
		},
		"too precise": {
			raw:      "1.005",
			decimals: 2,
			wantErr:  errors.ErrAmount,
		},
		"negative": {
			raw:     "-1",
			wantErr: errors.ErrAmount,
		},
		"not a number": {
			raw:     "ten",
			wantErr: errors.ErrAmount,
		},
		"greatest value": {
			raw:  "18446744073709551615",
			want: math.MaxUint64,
		},
		"overflow": {
			raw:      "18446744073709551615",
			decimals: 1,
			wantErr:  errors.ErrOverflow,
		},
		"too many decimals": {
			raw:      "1",
			decimals: 10,
			wantErr:  errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAmount(tc.raw, tc.decimals)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]struct {
		value    uint64
		decimals uint8
		want     string
	}{
		"zero":            {value: 0, decimals: 2, want: "0"},
		"whole":           {value: 1200, decimals: 2, want: "12"},
		"fraction":        {value: 150, decimals: 2, want: "1.5"},
		"no decimals":     {value: 42, want: "42"},
		"only a fraction": {value: 7, decimals: 3, want: "0.007"},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FormatAmount(tc.value, tc.decimals)
			assert.Equal(t, tc.want, got)

			back, err := ParseAmount(got, tc.decimals)
			assert.Nil(t, err)
			assert.Equal(t, tc.value, back)
		})
	}
}
