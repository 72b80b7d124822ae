package graph

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/pkmuru/copilot-trans/internal/shared"
)

func makeResponse(statusCode int, contentType, body string) *Response {
	header := make(http.Header)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Header:     header,
		Body:       []byte(body),
	}
}

func TestDecode(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		t.Run("204 Regardless Of Headers", func(t *testing.T) {
			resp := makeResponse(http.StatusNoContent, "application/json", `{"value":[]}`)
			body, err := Decode(resp)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if body.Kind != KindEmpty {
				t.Errorf("expected KindEmpty, got %v", body.Kind)
			}
		})

		t.Run("202 Accepted", func(t *testing.T) {
			body, err := Decode(makeResponse(http.StatusAccepted, "", ""))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if body.Kind != KindEmpty {
				t.Errorf("expected KindEmpty, got %v", body.Kind)
			}
		})

		t.Run("Whitespace Only Body", func(t *testing.T) {
			body, err := Decode(makeResponse(http.StatusOK, "application/json", "  \n\t "))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if body.Kind != KindEmpty {
				t.Errorf("expected KindEmpty, got %v", body.Kind)
			}
		})

		t.Run("No Body At All", func(t *testing.T) {
			body, err := Decode(makeResponse(http.StatusOK, "application/json", ""))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if body.Kind != KindEmpty {
				t.Errorf("expected KindEmpty, got %v", body.Kind)
			}
		})
	})

	t.Run("Raw", func(t *testing.T) {
		t.Run("Plain Text", func(t *testing.T) {
			body, err := Decode(makeResponse(http.StatusOK, "text/plain", "hello"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if body.Kind != KindRaw {
				t.Fatalf("expected KindRaw, got %v", body.Kind)
			}
			if body.Raw != "hello" {
				t.Errorf("expected raw body 'hello', got %q", body.Raw)
			}
		})

		t.Run("Missing Content Type", func(t *testing.T) {
			body, err := Decode(makeResponse(http.StatusOK, "", `{"looks":"like json"}`))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if body.Kind != KindRaw {
				t.Errorf("expected KindRaw without declared JSON content type, got %v", body.Kind)
			}
		})
	})

	t.Run("Parsed", func(t *testing.T) {
		t.Run("Enveloped Object", func(t *testing.T) {
			body, err := Decode(makeResponse(http.StatusOK, "application/json", `{"value":[{"id":"a"}]}`))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if body.Kind != KindParsed {
				t.Fatalf("expected KindParsed, got %v", body.Kind)
			}

			items := body.Items()
			if len(items) != 1 {
				t.Fatalf("expected 1 item, got %d", len(items))
			}
			if id, ok := ResolveID(items[0]); !ok || id != "a" {
				t.Errorf("expected item id 'a', got %q (resolved=%v)", id, ok)
			}
		})

		t.Run("Bare Array", func(t *testing.T) {
			body, err := Decode(makeResponse(http.StatusOK, "application/json", `[{"id":"x"},{"id":"y"}]`))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(body.Items()) != 2 {
				t.Errorf("expected 2 items from bare array, got %d", len(body.Items()))
			}
		})

		t.Run("Object Without Value Field", func(t *testing.T) {
			body, err := Decode(makeResponse(http.StatusOK, "application/json", `{"id":"solo"}`))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if items := body.Items(); items != nil {
				t.Errorf("expected nil items, got %v", items)
			}
			if _, ok := body.Object(); !ok {
				t.Error("expected Object to resolve")
			}
		})

		t.Run("Non Object Elements Dropped", func(t *testing.T) {
			body, err := Decode(makeResponse(http.StatusOK, "application/json", `{"value":[{"id":"a"},"noise",42]}`))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(body.Items()) != 1 {
				t.Errorf("expected non-object elements dropped, got %d items", len(body.Items()))
			}
		})

		t.Run("JSON Suffix Content Type", func(t *testing.T) {
			body, err := Decode(makeResponse(http.StatusOK, "application/hal+json; charset=utf-8", `{"value":[]}`))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if body.Kind != KindParsed {
				t.Errorf("expected KindParsed for +json content type, got %v", body.Kind)
			}
		})
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		t.Run("Fails With Decode Error", func(t *testing.T) {
			_, err := Decode(makeResponse(http.StatusOK, "application/json", `{"value":[`))
			if err == nil {
				t.Fatal("expected error for malformed JSON")
			}
			if !errors.Is(err, shared.ErrDecodeFailed) {
				t.Errorf("expected ErrDecodeFailed, got %v", err)
			}
			if !strings.Contains(err.Error(), `{"value":[`) {
				t.Errorf("expected error to include body snippet, got %v", err)
			}
		})

		t.Run("Snippet Is Truncated", func(t *testing.T) {
			long := "{" + strings.Repeat("x", 2000)
			_, err := Decode(makeResponse(http.StatusOK, "application/json", long))
			if err == nil {
				t.Fatal("expected error for malformed JSON")
			}
			if strings.Contains(err.Error(), long) {
				t.Error("expected snippet to be truncated, full body present")
			}
			if !strings.Contains(err.Error(), long[:snippetLimit]) {
				t.Error("expected first 800 characters of the body in the error")
			}
		})
	})
}
