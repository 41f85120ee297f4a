package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmap/internal/common/pagination"
)

func TestParseQueryParams(t *testing.T) {
	cfg := pagination.DefaultConfig()

	tests := []struct {
		name    string
		url     string
		want    pagination.Params
		wantErr bool
	}{
		{name: "no parameters uses defaults", url: "/bookstores", want: pagination.Params{Page: 1, Limit: 20}},
		{name: "explicit page and limit", url: "/bookstores?page=3&limit=50", want: pagination.Params{Page: 3, Limit: 50}},
		{name: "page only", url: "/bookstores?page=7", want: pagination.Params{Page: 7, Limit: 20}},
		{name: "limit only", url: "/bookstores?limit=5", want: pagination.Params{Page: 1, Limit: 5}},
		{name: "limit at max", url: "/bookstores?limit=100", want: pagination.Params{Page: 1, Limit: 100}},
		{name: "page zero", url: "/bookstores?page=0", wantErr: true},
		{name: "page negative", url: "/bookstores?page=-1", wantErr: true},
		{name: "page non-numeric", url: "/bookstores?page=abc", wantErr: true},
		{name: "limit zero", url: "/bookstores?limit=0", wantErr: true},
		{name: "limit over max", url: "/bookstores?limit=101", wantErr: true},
		{name: "limit non-numeric", url: "/bookstores?limit=many", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pagination.ParseQueryParams(httptest.NewRequest("GET", tt.url, nil), cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParamsValidate(t *testing.T) {
	cfg := pagination.DefaultConfig()

	assert.NoError(t, pagination.Params{Page: 1, Limit: 20}.Validate(cfg))
	assert.NoError(t, pagination.Params{Page: 999, Limit: 100}.Validate(cfg))
	assert.Error(t, pagination.Params{Page: 0, Limit: 20}.Validate(cfg))
	assert.Error(t, pagination.Params{Page: 1, Limit: 0}.Validate(cfg))
	assert.Error(t, pagination.Params{Page: 1, Limit: 101}.Validate(cfg))
}

func TestParamsWithDefaults(t *testing.T) {
	cfg := pagination.DefaultConfig()

	tests := []struct {
		name string
		in   pagination.Params
		want pagination.Params
	}{
		{name: "valid untouched", in: pagination.Params{Page: 2, Limit: 30}, want: pagination.Params{Page: 2, Limit: 30}},
		{name: "zero values replaced", in: pagination.Params{}, want: pagination.Params{Page: 1, Limit: 20}},
		{name: "negative page replaced", in: pagination.Params{Page: -5, Limit: 10}, want: pagination.Params{Page: 1, Limit: 10}},
		{name: "limit capped", in: pagination.Params{Page: 1, Limit: 500}, want: pagination.Params{Page: 1, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.WithDefaults(cfg))
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("all set", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "2")
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "30")
		t.Setenv("PAGINATION_MAX_LIMIT", "200")

		cfg := pagination.LoadFromEnv()
		assert.Equal(t, pagination.Config{DefaultPage: 2, DefaultLimit: 30, MaxLimit: 200}, cfg)
	})

	t.Run("unset falls back to defaults", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "")
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "")
		t.Setenv("PAGINATION_MAX_LIMIT", "")

		assert.Equal(t, pagination.DefaultConfig(), pagination.LoadFromEnv())
	})

	t.Run("unparsable falls back to defaults", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "first")
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "30")
		t.Setenv("PAGINATION_MAX_LIMIT", "lots")

		cfg := pagination.LoadFromEnv()
		assert.Equal(t, pagination.Config{DefaultPage: 1, DefaultLimit: 30, MaxLimit: 100}, cfg)
	})
}
