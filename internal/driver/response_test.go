package driver

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestResponseJSON(t *testing.T) {
	report := "1 message (0 info, 1 warning, 0 errors)"
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{"null", Response{Result: Null, Diagnostics: &report}, `{"result":null,"diagnostics":"1 message (0 info, 1 warning, 0 errors)"}`},
		{"false", Response{Result: False}, `{"result":false,"diagnostics":null}`},
		{"text", Response{Result: Text("<a>")}, `{"result":"<a>","diagnostics":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.resp.WriteJSON(&buf); err != nil {
				t.Fatal(err)
			}
			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Fatalf("json = %s, want %s", got, tt.want)
			}
			var back Response
			if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
				t.Fatal(err)
			}
			if back.Result != tt.resp.Result || back.Report() != tt.resp.Report() {
				t.Fatalf("round trip: %+v", back)
			}
		})
	}
}

func TestResponseMsgpack(t *testing.T) {
	report := "report"
	for _, resp := range []Response{
		{Result: Null, Diagnostics: &report},
		{Result: False},
		{Result: Text("42")},
	} {
		var buf bytes.Buffer
		if err := resp.WriteMsgpack(&buf); err != nil {
			t.Fatal(err)
		}
		back, err := DecodeMsgpack(buf.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if back.Result != resp.Result || back.Report() != resp.Report() {
			t.Fatalf("round trip: %+v, want %+v", back, resp)
		}
	}
}

func TestPrimaryRejectsTrue(t *testing.T) {
	var p Primary
	if err := json.Unmarshal([]byte("true"), &p); err == nil {
		t.Fatal("true must not decode as a primary result")
	}
}
