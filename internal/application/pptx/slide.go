package pptx

import (
	"fmt"
	"strings"

	"autoslidex-api/internal/domain/entity"
)

// 内容页布局坐标，单位 EMU（914400 EMU = 1 英寸）
const (
	marginEMU    = 685800  // 页边距 0.75 英寸
	accentBarEMU = 118872  // 顶部色条高度
	titleTopEMU  = 365760  // 标题上沿
	titleHighEMU = 1005840 // 标题高度
	bodyTopEMU   = 1600200 // 正文区上沿
	bodyHighEMU  = 4389120 // 正文区高度
	footerTopEMU = 6400800 // 页脚上沿

	// 图文两栏：图片占左侧约 40%，正文占右侧约 60%
	imageWidthEMU = 3200400
	bodyLeftEMU   = 4114800
	bodyWidthEMU  = 4343400
)

const slideNS = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

// solidColor 带可选透明度的纯色填充值，alpha 为千分比（100000 = 不透明）
func solidColor(hex string, alpha int) string {
	if alpha > 0 && alpha < 100000 {
		return fmt.Sprintf(`<a:srgbClr val="%s"><a:alpha val="%d"/></a:srgbClr>`, hex, alpha)
	}
	return fmt.Sprintf(`<a:srgbClr val="%s"/>`, hex)
}

// rectShape 纯色矩形
func rectShape(id int, name string, x, y, w, h int, hex string, alpha int) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`+
		`<a:solidFill>%s</a:solidFill><a:ln><a:noFill/></a:ln></p:spPr>`+
		`<p:txBody><a:bodyPr/><a:lstStyle/><a:p/></p:txBody></p:sp>`,
		id, esc(name), x, y, w, h, solidColor(hex, alpha))
}

// textRun 单段文本
type textRun struct {
	text  string
	size  int // 字号，单位 1/100 pt
	bold  bool
	color string
	align string // ctr/l/r，空串为默认
}

// textBoxShape 由多个段落组成的文本框
func textBoxShape(id int, name string, x, y, w, h int, paras []string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`+
		`<p:txBody><a:bodyPr wrap="square" anchor="t"><a:normAutofit/></a:bodyPr><a:lstStyle/>%s</p:txBody></p:sp>`,
		id, esc(name), x, y, w, h, strings.Join(paras, ""))
}

// plainPara 无项目符号的单行段落
func plainPara(r textRun) string {
	var props strings.Builder
	props.WriteString(`<a:pPr`)
	if r.align != "" {
		props.WriteString(` algn="` + r.align + `"`)
	}
	props.WriteString(`><a:buNone/></a:pPr>`)

	bold := ""
	if r.bold {
		bold = ` b="1"`
	}
	return fmt.Sprintf(`<a:p>%s<a:r><a:rPr lang="en-US" sz="%d"%s dirty="0"><a:solidFill>%s</a:solidFill></a:rPr><a:t>%s</a:t></a:r></a:p>`,
		props.String(), r.size, bold, solidColor(r.color, 0), esc(r.text))
}

// bulletPara 带圆点符号的要点段落
func bulletPara(text, textColor, bulletColor string, size int) string {
	return fmt.Sprintf(`<a:p><a:pPr marL="285750" indent="-285750"><a:spcBef><a:spcPts val="900"/></a:spcBef>`+
		`<a:buClr>%s</a:buClr><a:buFont typeface="Arial"/><a:buChar char="&#8226;"/></a:pPr>`+
		`<a:r><a:rPr lang="en-US" sz="%d" dirty="0"><a:solidFill>%s</a:solidFill></a:rPr><a:t>%s</a:t></a:r></a:p>`,
		solidColor(bulletColor, 0), size, solidColor(textColor, 0), esc(text))
}

// pictureShape 引用 rId2 图片关系的图片形状
func pictureShape(id int, name string, x, y, w, h int) string {
	return fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`+
		`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		id, esc(name), x, y, w, h)
}

// slideShell 把形状序列包装为完整的 slide 部件
func slideShell(bgHex string, shapes []string) string {
	return xmlHeader + `<p:sld ` + slideNS + `>` +
		`<p:cSld>` +
		`<p:bg><p:bgPr><a:solidFill>` + solidColor(bgHex, 0) + `</a:solidFill><a:effectLst/></p:bgPr></p:bg>` +
		`<p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>` +
		strings.Join(shapes, "") +
		`</p:spTree></p:cSld>` +
		`<p:clrMapOvr><a:overrideClrMapping bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/></p:clrMapOvr>` +
		`</p:sld>`
}

// titleSlideXML 封面页：整页背景图 + 半透明遮罩 + 居中主标题与副标题
func titleSlideXML(t Theme, title, subtitle string, hasImage bool) string {
	var shapes []string
	id := 2

	if hasImage {
		shapes = append(shapes, pictureShape(id, "Cover Image", 0, 0, slideWidthEMU, slideHeightEMU))
		id++
		shapes = append(shapes, rectShape(id, "Overlay", 0, 0, slideWidthEMU, slideHeightEMU, t.Overlay, 55000))
		id++
	}

	titleColor := t.TitleText
	subColor := t.BodyText
	if hasImage {
		titleColor = "FFFFFF"
		subColor = "EEEEEE"
	}

	shapes = append(shapes, textBoxShape(id, "Title", marginEMU, 2286000, slideWidthEMU-2*marginEMU, 1371600,
		[]string{plainPara(textRun{text: title, size: 4400, bold: true, color: titleColor, align: "ctr"})}))
	id++
	if strings.TrimSpace(subtitle) != "" {
		shapes = append(shapes, textBoxShape(id, "Subtitle", marginEMU, 3778250, slideWidthEMU-2*marginEMU, 914400,
			[]string{plainPara(textRun{text: subtitle, size: 2000, color: subColor, align: "ctr"})}))
		id++
	}
	shapes = append(shapes, rectShape(id, "Accent Bar", (slideWidthEMU-2438400)/2, 3657600, 2438400, 45720, t.Accent, 0))

	return slideShell(t.Background, shapes)
}

// contentSlideXML 内容页：顶部色条 + 标题 + 左图右文（无图时正文占满整行）+ 页脚
func contentSlideXML(t Theme, s *entity.Slide, deckTitle string, slideNumber, total int, hasImage bool) string {
	var shapes []string
	id := 2

	shapes = append(shapes, rectShape(id, "Accent Bar", 0, 0, slideWidthEMU, accentBarEMU, t.Accent, 0))
	id++

	shapes = append(shapes, textBoxShape(id, "Slide Title", marginEMU, titleTopEMU, slideWidthEMU-2*marginEMU, titleHighEMU,
		[]string{plainPara(textRun{text: s.Title, size: 3200, bold: true, color: t.TitleText})}))
	id++

	bodyX := marginEMU
	bodyW := slideWidthEMU - 2*marginEMU
	if hasImage {
		shapes = append(shapes, pictureShape(id, "Slide Image", marginEMU, bodyTopEMU, imageWidthEMU, bodyHighEMU))
		id++
		bodyX = bodyLeftEMU
		bodyW = bodyWidthEMU
	}

	bullets := make([]string, 0, len(s.Content))
	for _, bullet := range s.Content {
		bullets = append(bullets, bulletPara(bullet, t.BodyText, t.Accent, 1800))
	}
	shapes = append(shapes, textBoxShape(id, "Slide Content", bodyX, bodyTopEMU, bodyW, bodyHighEMU, bullets))
	id++

	shapes = append(shapes, textBoxShape(id, "Footer", marginEMU, footerTopEMU, 4572000, 365760,
		[]string{plainPara(textRun{text: deckTitle, size: 1100, color: t.Footer})}))
	id++
	shapes = append(shapes, textBoxShape(id, "Slide Number", slideWidthEMU-marginEMU-1524000, footerTopEMU, 1524000, 365760,
		[]string{plainPara(textRun{text: fmt.Sprintf("%d / %d", slideNumber, total), size: 1100, color: t.Footer, align: "r"})}))

	return slideShell(t.Background, shapes)
}

// slideRelsXML 单页的关系表：版式、可选图片、可选备注页
func slideRelsXML(hasImage bool, imageExt string, slideNo int, hasNotes bool) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	if hasImage {
		sb.WriteString(fmt.Sprintf(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image%d.%s"/>`, slideNo, imageExt))
	}
	if hasNotes {
		sb.WriteString(fmt.Sprintf(`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide" Target="../notesSlides/notesSlide%d.xml"/>`, slideNo))
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

// notesSlideXML 备注页部件
func notesSlideXML(notes string) string {
	return xmlHeader + `<p:notes ` + slideNS + `>` +
		`<p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>` +
		`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Notes Placeholder"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>` +
		`<p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr><p:spPr/>` +
		`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US" dirty="0"/><a:t>` + esc(notes) + `</a:t></a:r></a:p></p:txBody></p:sp>` +
		`</p:spTree></p:cSld>` +
		`<p:clrMapOvr><a:overrideClrMapping bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/></p:clrMapOvr>` +
		`</p:notes>`
}

// notesSlideRelsXML 备注页关系表
func notesSlideRelsXML(slideNo int) string {
	return xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		fmt.Sprintf(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster" Target="../notesMasters/notesMaster1.xml"/>`+
			`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="../slides/slide%d.xml"/>`, slideNo) +
		`</Relationships>`
}
