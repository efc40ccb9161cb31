package utils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"dedup preserves order", "great #foo video #bar #foo", []string{"#foo", "#bar"}},
		{"case sensitive dedup", "#Foo #foo #FOO", []string{"#Foo", "#foo", "#FOO"}},
		{"arabic letters", "جديد #فيديو رائع #foo", []string{"#فيديو", "#foo"}},
		{"digits and underscore", "#tag_1 #2024", []string{"#tag_1", "#2024"}},
		{"no hashtags", "plain text without tags", []string{}},
		{"empty text", "", []string{}},
		{"bare hash ignored", "price # 100", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHashtags(tt.text)
			assert.Equal(t, tt.want, got)
			// 空结果也必须是非nil切片,序列化成 [] 而不是 null
			assert.NotNil(t, got)
		})
	}
}

func TestExtractHashtagsCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&sb, "#tag%d ", i)
	}

	tags := ExtractHashtags(sb.String())
	assert.Len(t, tags, MaxHashtags)
	assert.Equal(t, "#tag0", tags[0])
	assert.Equal(t, "#tag14", tags[MaxHashtags-1])
}
