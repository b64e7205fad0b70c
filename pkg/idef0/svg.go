package idef0

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.0//EN"
"http://www.w3.org/TR/2001/REC-SVG-20010904/DTD/svg10.dtd" [
<!ATTLIST svg xmlns:xlink CDATA #FIXED "http://www.w3.org/1999/xlink">
]>
`

// SVG renders the laid-out diagram as a standalone SVG document.
func (d *Diagram) SVG() []byte {
	var buf bytes.Buffer
	d.writeSVG(&buf)
	return buf.Bytes()
}

// WriteSVG writes the document produced by [Diagram.SVG] to w.
func (d *Diagram) WriteSVG(w io.Writer) error {
	_, err := w.Write(d.SVG())
	return err
}

func (d *Diagram) writeSVG(buf *bytes.Buffer) {
	buf.WriteString(svgHeader)
	buf.WriteString("<svg xmlns='http://www.w3.org/2000/svg'\nxmlns:xlink='http://www.w3.org/1999/xlink'\n")
	fmt.Fprintf(buf, "width='%spt' height='%spt'\n", num(d.width), num(d.height))
	fmt.Fprintf(buf, "viewBox='%s %s %s %s'\n>\n", num(d.X1()), num(d.Y1()), num(d.width), num(d.height))
	fmt.Fprintf(buf, "<style type='text/css'>\n  text {\n    font-family: %s;\n    font-size: %spx;\n  }\n</style>\n",
		cssText.Replace(d.style.FontFamily), num(d.style.FontSize))
	buf.WriteString("<g>\n")
	for _, b := range d.boxes.All() {
		b.writeSVG(buf)
	}
	for _, l := range d.lines.All() {
		l.writeSVG(buf)
	}
	buf.WriteString("</g>\n</svg>\n")
}

// SVG returns the box's fragment: its rectangle, centred name and node number.
func (b *ProcessBox) SVG() string {
	var buf bytes.Buffer
	b.writeSVG(&buf)
	return buf.String()
}

func (b *ProcessBox) writeSVG(buf *bytes.Buffer) {
	name, number := b.NamePosition(), b.NodeNumberPosition()
	fmt.Fprintf(buf, "  <rect x='%s' y='%s' width='%s' height='%s' fill='none' stroke='black' />\n",
		num(b.X1()), num(b.Y1()), num(b.width), num(b.height))
	fmt.Fprintf(buf, "  <text text-anchor='middle' x='%s' y='%s'>%s</text>\n",
		num(name.X), num(name.Y), escapeXML(b.name))
	fmt.Fprintf(buf, "  <text text-anchor='end' x='%s' y='%s'>%s</text>\n",
		num(number.X), num(number.Y), b.NodeNumber())
}

// SVG returns the line's fragment: its path, arrowhead and label.
func (l *Line) SVG() string {
	var buf bytes.Buffer
	l.writeSVG(&buf)
	return buf.String()
}

func (l *Line) writeSVG(buf *bytes.Buffer) {
	pts := l.Points()
	var d strings.Builder
	for i, p := range pts {
		if i == 0 {
			d.WriteString("M ")
		} else {
			d.WriteString(" L ")
		}
		d.WriteString(num(p.X) + " " + num(p.Y))
	}
	fmt.Fprintf(buf, "  <path d='%s' fill='none' stroke='black' />\n", d.String())

	head := l.Arrowhead()
	fmt.Fprintf(buf, "  <polygon points='%s,%s %s,%s %s,%s' fill='black' />\n",
		num(head[0].X), num(head[0].Y), num(head[1].X), num(head[1].Y), num(head[2].X), num(head[2].Y))

	at, _ := l.LabelPosition()
	fmt.Fprintf(buf, "  <text x='%s' y='%s'>%s</text>\n", num(at.X), num(at.Y), escapeXML(l.label))
}

func num(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// cssText escapes the characters that would end the style element early.
var cssText = strings.NewReplacer("&", "&amp;", "<", "&lt;")

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
