package ui

import (
	"fmt"
	"strings"

	"github.com/muurk/macropad/internal/action"
	"github.com/muurk/macropad/internal/layout"
)

// RenderLayout lists every page and button of l with the interpreted action.
func RenderLayout(l *layout.Layout) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", HeaderParamValueStyle.Bold(true).Render(l.Name))
	fmt.Fprintf(&b, "%s\n\n", DescriptionStyle.Render(fmt.Sprintf(
		"window %gx%g at (%g,%g)  grid %dx%d  %d pages  %d buttons",
		l.Width, l.Height, l.WindowX, l.WindowY, l.GridRows, l.GridCols, len(l.Pages), l.ButtonCount(),
	)))

	for pi, p := range l.Pages {
		fmt.Fprintf(&b, "%s\n", PageTitleStyle.Render(fmt.Sprintf("%d. %s", pi+1, p.Name)))
		if len(p.Buttons) == 0 {
			fmt.Fprintf(&b, "   %s\n", DescriptionStyle.Render("(no buttons)"))
		}
		for bi, btn := range p.Buttons {
			fmt.Fprintf(&b, "   %2d  %s%s%s %s\n",
				bi+1,
				ButtonTextStyle.Render(btn.Text),
				ActionKindStyle.Render(string(btn.Action)),
				ActionValueStyle.Render(btn.Value),
				DescriptionStyle.Render(ArrowMarker+" "+action.Describe(action.Parse(btn))),
			)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderIssues lists validation issues, one per line.
func RenderIssues(issues []layout.Issue) string {
	if len(issues) == 0 {
		return SuccessTitleStyle.Render(SuccessMarker+" no issues") + "\n"
	}
	var b strings.Builder
	for _, i := range issues {
		style, marker := SeverityStyle(i.Severity)
		fmt.Fprintf(&b, "  %s\n", style.Render(marker+" "+i.String()))
	}
	return b.String()
}
