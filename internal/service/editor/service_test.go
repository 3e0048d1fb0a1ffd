package editor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"draftconv/internal/config"
	"draftconv/internal/domain"
	"draftconv/internal/domain/models/document"
)

func TestConversionService_Validation(t *testing.T) {
	service := NewConversionService(newTestConverter(t, Options{}), testLogger())
	ctx := context.Background()

	deep := paragraph(text("bottom"))
	for i := 0; i < config.MaxTreeDepth+1; i++ {
		deep = el("section", nil, deep)
	}

	tests := []struct {
		name    string
		doc     document.Document
		wantErr error
	}{
		{name: "valid", doc: document.Document{paragraph(text("ok"))}},
		{name: "nil document", doc: nil, wantErr: domain.ErrValidation},
		{name: "missing type", doc: document.Document{{Children: []document.Node{text("x")}}}, wantErr: domain.ErrValidation},
		{
			name: "text with children",
			doc: document.Document{paragraph(document.Node{
				Text:     new(string),
				Children: []document.Node{text("x")},
			})},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "data key too long",
			doc:     document.Document{el("comment-block", map[string]any{strings.Repeat("k", config.MaxDataKeyLength+1): "v"}, text(""))},
			wantErr: domain.ErrValidation,
		},
		{name: "too deep", doc: document.Document{deep}, wantErr: domain.ErrValidation},
		{name: "unregistered type", doc: document.Document{el("mystery", nil, text("x"))}, wantErr: domain.ErrSerialization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ToHTML(ctx, tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConversionService_ToDocumentTooLarge(t *testing.T) {
	service := NewConversionService(newTestConverter(t, Options{}), testLogger())

	_, err := service.ToDocument(context.Background(), strings.Repeat("a", config.MaxHTMLBytes+1))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestConversionService_Plugins(t *testing.T) {
	service := NewConversionService(newTestConverter(t, Options{}), testLogger())

	infos := service.Plugins(context.Background())
	byType := make(map[string]int, len(infos))
	for i, info := range infos {
		byType[info.Type] = i
	}

	comment, ok := byType["comment-block"]
	if !ok {
		t.Fatal("comment-block missing")
	}
	info := infos[comment]
	if info.Kind != "block" || !info.Void || info.Resource != "comment" || info.EmbedType != "block" {
		t.Errorf("unexpected comment-block info: %+v", info)
	}
	if len(info.Fields) != 1 || info.Fields[0] != "text" {
		t.Errorf("comment-block fields = %v", info.Fields)
	}

	if idx, ok := byType["paragraph"]; !ok || infos[idx].Tag != "p" {
		t.Errorf("paragraph info missing or without tag")
	}
}
