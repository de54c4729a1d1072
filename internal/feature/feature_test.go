package feature

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name        string
		requirement string
		want        []string
	}{
		{
			name:        "two trigger sentences",
			requirement: "实现用户登录功能；添加密码加密模块。",
			want:        []string{"实现用户登录功能", "添加密码加密模块"},
		},
		{
			name:        "half-width semicolon delimiter",
			requirement: "实现购物车;支持订单结算",
			want:        []string{"实现购物车", "支持订单结算"},
		},
		{
			name:        "long supplement joins previous feature",
			requirement: "实现用户登录功能。该功能需要兼容已有的账号体系和第三方认证",
			want:        []string{"实现用户登录功能 该功能需要兼容已有的账号体系和第三方认证"},
		},
		{
			name:        "short keyword-less sentence dropped",
			requirement: "实现用户登录功能。性能要好",
			want:        []string{"实现用户登录功能"},
		},
		{
			name:        "no trigger keyword returns whole requirement",
			requirement: "系统需要更快的响应速度",
			want:        []string{"系统需要更快的响应速度"},
		},
		{
			name:        "supplement before first feature is dropped",
			requirement: "这一段是没有关键词的背景描述文字。实现用户登录功能",
			want:        []string{"实现用户登录功能"},
		},
		{
			name:        "empty requirement",
			requirement: "",
			want:        nil,
		},
		{
			name:        "whitespace only",
			requirement: "   ",
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.requirement)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %v, want %v", tt.requirement, got, tt.want)
			}
		})
	}
}

func TestSplitSupplementLengthBoundary(t *testing.T) {
	// Exactly 10 runes is not a supplement; 11 runes is.
	ten := "一二三四五六七八九十"
	eleven := ten + "一"

	got := Split("实现登录。" + ten)
	if len(got) != 1 || got[0] != "实现登录" {
		t.Errorf("10-rune sentence should be dropped, got %v", got)
	}

	got = Split("实现登录。" + eleven)
	want := "实现登录 " + eleven
	if len(got) != 1 || got[0] != want {
		t.Errorf("11-rune sentence should be appended, got %v", got)
	}
}
