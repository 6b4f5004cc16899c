package utils

import (
	"testing"
)

func TestRemoveAccents(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"hello", "hello"},
		{"cobrança", "cobranca"},
		{"negociação", "negociacao"},
		{"transferências", "transferencias"},
		{"café", "cafe"},
		{"José", "Jose"},
		{"São Paulo", "Sao Paulo"},
		{"naïve", "naive"},
	}

	for _, test := range tests {
		result := RemoveAccents(test.input)
		if result != test.expected {
			t.Errorf("RemoveAccents(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", false},
		{"id", true},
		{"accountId", true},
		{"_private", true},
		{"$ref", true},
		{"v2", true},
		{"2fa", false},
		{"content-type", false},
		{"a b", false},
		{"@type", false},
		{"données", false},
	}

	for _, test := range tests {
		result := IsIdentifier(test.input)
		if result != test.expected {
			t.Errorf("IsIdentifier(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"openapi_wallet_getBalance", "openapi_wallet_getBalance"},
		{"openapi_wallet-v2_get", "openapi_wallet_v2_get"},
		{"openapi_cobrança_list", "openapi_cobranca_list"},
		{"page[size]", "page_size_"},
		{"2fa", "_2fa"},
	}

	for _, test := range tests {
		result := Identifier(test.input)
		if result != test.expected {
			t.Errorf("Identifier(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestParamIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"accountId", "accountId"},
		{"account-id", "accountId"},
		{"X-Request-Id", "XRequestId"},
		{"universe", "universe"},
		{"a--b", "aB"},
		{"page[size]", "page_size_"},
	}

	for _, test := range tests {
		result := ParamIdentifier(test.input)
		if result != test.expected {
			t.Errorf("ParamIdentifier(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestToBigCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"openapi", "Openapi"},
		{"openapi_socket_get_market", "OpenapiSocketGetMarket"},
		{"openapi_wallet_getBalance", "OpenapiWalletGetBalance"},
	}

	for _, test := range tests {
		result := ToBigCamelCase(test.input)
		if result != test.expected {
			t.Errorf("ToBigCamelCase(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestToSmallCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"O", "o"},
		{"openapi_wallet_getBalance", "openapiWalletGetBalance"},
	}

	for _, test := range tests {
		result := ToSmallCamelCase(test.input)
		if result != test.expected {
			t.Errorf("ToSmallCamelCase(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}
