// Package pptx 将演示文稿大纲渲染为 OOXML 格式的 PPTX 文件
package pptx

import "strings"

// Theme 渲染主题配色，颜色均为不带 # 的 RRGGBB 十六进制
type Theme struct {
	Name       string
	Background string // 内容页背景
	TitleText  string // 标题文字
	BodyText   string // 正文文字
	Accent     string // 顶部色条与装饰元素
	Overlay    string // 封面图片上的遮罩色
	Footer     string // 页脚文字
}

// 内置主题表
var themes = map[string]Theme{
	"modern": {
		Name:       "modern",
		Background: "FFFFFF",
		TitleText:  "1A1A2E",
		BodyText:   "333344",
		Accent:     "0F4C81",
		Overlay:    "16213E",
		Footer:     "8888AA",
	},
	"professional": {
		Name:       "professional",
		Background: "F8F9FA",
		TitleText:  "212529",
		BodyText:   "343A40",
		Accent:     "1B4965",
		Overlay:    "1B4965",
		Footer:     "6C757D",
	},
	"creative": {
		Name:       "creative",
		Background: "FFF8F0",
		TitleText:  "2D1B44",
		BodyText:   "44355B",
		Accent:     "E76F51",
		Overlay:    "2D1B44",
		Footer:     "9A8C98",
	},
}

// DefaultTemplate 未指定模板时的默认主题名
const DefaultTemplate = "modern"

// ThemeFor 按名称返回主题，未知名称回退默认主题
func ThemeFor(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return themes[DefaultTemplate]
}
