package page

import (
	"io"
	"strings"
	"testing"
)

func TestVerify_EmbeddedPage(t *testing.T) {
	if err := Verify(); err != nil {
		t.Fatalf("embedded page failed verification: %v", err)
	}
}

func TestVerifyHTML(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		wantErr string
	}{
		{
			name: "valid",
			html: `<form id="reviewForm"><input id="review"></form><div id="result"></div>`,
		},
		{
			name: "textarea input",
			html: `<form id="reviewForm"><div><textarea id="review"></textarea></div></form><p id="result"></p>`,
		},
		{
			name:    "missing form",
			html:    `<input id="review"><div id="result"></div>`,
			wantErr: `no element with id "reviewForm"`,
		},
		{
			name:    "form id on div",
			html:    `<div id="reviewForm"><input id="review"></div><div id="result"></div>`,
			wantErr: "want <form>",
		},
		{
			name:    "missing input",
			html:    `<form id="reviewForm"></form><div id="result"></div>`,
			wantErr: `no element with id "review"`,
		},
		{
			name:    "input outside form",
			html:    `<form id="reviewForm"></form><input id="review"><div id="result"></div>`,
			wantErr: "outside form",
		},
		{
			name:    "missing result",
			html:    `<form id="reviewForm"><input id="review"></form>`,
			wantErr: `no element with id "result"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyHTML(strings.NewReader(tt.html))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestStatic(t *testing.T) {
	f, err := Static().Open("js/review.js")
	if err != nil {
		t.Fatalf("open review.js: %v", err)
	}
	defer func() { _ = f.Close() }()

	body, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read review.js: %v", err)
	}
	for _, want := range []string{`"/predict"`, `"#dc3545"`, `"#28a745"`, "preventDefault"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("review.js missing %s", want)
		}
	}

	// A null reply must reach the catch block like the Go client's decode error.
	if strings.Contains(string(body), "body &&") {
		t.Error("review.js should not guard against a null reply body")
	}
	if !strings.Contains(string(body), "if (body.prediction)") {
		t.Error("review.js should test body.prediction directly")
	}
}

func TestIndex_ReferencesScript(t *testing.T) {
	if !strings.Contains(string(Index()), `src="/static/js/review.js"`) {
		t.Error("index.html should load /static/js/review.js")
	}
}
