package layout

import (
	"testing"
)

func TestNewDefaults(t *testing.T) {
	l := New("")
	if l.Name != DefaultLayoutName {
		t.Errorf("Name = %q, want %q", l.Name, DefaultLayoutName)
	}
	if l.Width != 1000 || l.Height != 600 || l.WindowX != 100 || l.WindowY != 100 {
		t.Errorf("geometry = %gx%g at (%g,%g)", l.Width, l.Height, l.WindowX, l.WindowY)
	}
	if l.GridRows <= 0 || l.GridCols <= 0 || !l.GridEnabled || l.GridVisible {
		t.Errorf("grid = %dx%d enabled=%v visible=%v", l.GridRows, l.GridCols, l.GridEnabled, l.GridVisible)
	}
	if l.Pages == nil || len(l.Pages) != 0 {
		t.Errorf("Pages = %v, want empty non-nil", l.Pages)
	}

	b := NewButton()
	if b.Text != "Key" || b.Color != "#DDDDDD" || b.TextColor != "#000000" || b.FontSize != 14 ||
		b.Width != 60 || b.Height != 60 || b.Action != ActionSendKey || b.Value != "" {
		t.Errorf("NewButton() = %+v", b)
	}
}

func TestDefaultLayout(t *testing.T) {
	l := Default()
	if l.Name != "Default" || len(l.Pages) != 1 || l.Pages[0].Name != "Main" {
		t.Errorf("Default() = %+v", l)
	}
}

func TestPageIndex(t *testing.T) {
	l := New("x")
	l.Pages = []Page{NewPage("Main"), NewPage("commands"), NewPage("COMMANDS")}

	tests := []struct {
		name string
		want int
	}{
		{"Main", 0},
		{"main", 0},
		{"Commands", 1},
		{"COMMANDS", 1},
		{"Missing", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := l.PageIndex(tt.name); got != tt.want {
			t.Errorf("PageIndex(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}

	var nilLayout *Layout
	if got := nilLayout.PageIndex("Main"); got != -1 {
		t.Errorf("nil PageIndex = %d", got)
	}
}

func TestFindPageAndButton(t *testing.T) {
	l := Example()

	pages := []struct {
		ref  string
		want int
	}{
		{"1", 0},
		{"2", 1},
		{"3", -1},
		{"0", -1},
		{"commands", 1},
		{"Nope", -1},
	}
	for _, tt := range pages {
		if got := l.FindPage(tt.ref); got != tt.want {
			t.Errorf("FindPage(%q) = %d, want %d", tt.ref, got, tt.want)
		}
	}

	buttons := []struct {
		ref  string
		want int
	}{
		{"1", 0},
		{"5", 4},
		{"6", -1},
		{"copy", 2},
		{"PIN", 3},
		{"Exit", -1},
	}
	for _, tt := range buttons {
		if got := l.Pages[0].FindButton(tt.ref); got != tt.want {
			t.Errorf("FindButton(%q) = %d, want %d", tt.ref, got, tt.want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	l := Example()
	c := l.Clone()
	if !l.Equal(c) {
		t.Fatal("clone not equal to original")
	}

	c.Pages[0].Buttons[0].Value = "changed"
	c.Pages[1].Name = "renamed"
	if l.Pages[0].Buttons[0].Value == "changed" || l.Pages[1].Name == "renamed" {
		t.Error("mutating clone changed the original")
	}
	if l.Equal(c) {
		t.Error("Equal should detect the change")
	}
}

func TestEqual(t *testing.T) {
	a := New("a")
	a.Pages = []Page{{Name: "p", Buttons: nil}}
	b := New("a")
	b.Pages = []Page{{Name: "p", Buttons: []Button{}}}
	if !a.Equal(b) {
		t.Error("nil and empty button slices should compare equal")
	}

	b.Pages = append(b.Pages, NewPage("q"))
	if a.Equal(b) {
		t.Error("different page counts compared equal")
	}

	var n1, n2 *Layout
	if !n1.Equal(n2) {
		t.Error("nil layouts should be equal")
	}
	if a.Equal(nil) {
		t.Error("layout equal to nil")
	}
}

func TestAddPageUniqueNames(t *testing.T) {
	l := New("x")
	if i := l.AddPage(); i != 0 || l.Pages[0].Name != "Page 1" {
		t.Fatalf("first AddPage -> %d %q", i, l.Pages[0].Name)
	}

	l.Pages = []Page{NewPage("page 2")}
	i := l.AddPage()
	if l.Pages[i].Name != "Page 3" {
		t.Errorf("AddPage with clash = %q, want Page 3", l.Pages[i].Name)
	}

	l.Pages = []Page{NewPage("Main"), NewPage("Other")}
	i = l.AddPage()
	if l.Pages[i].Name != "Page 3" {
		t.Errorf("AddPage = %q, want Page 3", l.Pages[i].Name)
	}
}

func TestAddAndDeleteButton(t *testing.T) {
	l := Default()
	i, err := l.AddButton(0)
	if err != nil {
		t.Fatalf("AddButton: %v", err)
	}
	b := l.Pages[0].Buttons[i]
	if b.Text != "New" || b.X != 10 || b.Y != 10 || b.Width != 80 || b.Height != 50 {
		t.Errorf("new button = %+v", b)
	}

	if _, err := l.AddButton(5); err == nil {
		t.Error("AddButton out of range should fail")
	}
	if err := l.DeleteButton(0, 3); err == nil {
		t.Error("DeleteButton out of range should fail")
	}
	if err := l.DeleteButton(0, i); err != nil {
		t.Fatalf("DeleteButton: %v", err)
	}
	if len(l.Pages[0].Buttons) != 0 {
		t.Errorf("buttons left: %d", len(l.Pages[0].Buttons))
	}
}

func TestDeletePage(t *testing.T) {
	l := Example()
	if err := l.DeletePage(0); err != nil {
		t.Fatalf("DeletePage: %v", err)
	}
	if len(l.Pages) != 1 || l.Pages[0].Name != "Commands" {
		t.Errorf("pages after delete = %v", l.Pages)
	}
	if err := l.DeletePage(1); err == nil {
		t.Error("DeletePage out of range should fail")
	}
}

func TestButtonMove(t *testing.T) {
	b := Button{X: 10, Y: 10}
	b.Move(5, -20)
	if b.X != 15 || b.Y != 10 {
		t.Errorf("Move(5,-20) -> (%g,%g), want (15,10)", b.X, b.Y)
	}
	b.Move(-15, 0)
	if b.X != 0 {
		t.Errorf("Move to zero -> %g", b.X)
	}
}

func TestButtonResize(t *testing.T) {
	tests := []struct {
		name       string
		w, h       float64
		dw, dh     float64
		keepAspect bool
		wantW      float64
		wantH      float64
	}{
		{"grow", 60, 60, 10, 5, false, 70, 65},
		{"clamp", 60, 60, -100, -50, false, 20, 20},
		{"aspect width drives", 60, 30, 10, 0, true, 70, 35},
		{"aspect height drives", 60, 30, 0, 10, true, 80, 40},
		{"aspect with zero height ignored", 60, 0, 10, 0, true, 70, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Button{Width: tt.w, Height: tt.h}
			b.Resize(tt.dw, tt.dh, tt.keepAspect)
			if b.Width != tt.wantW || b.Height != tt.wantH {
				t.Errorf("Resize -> %gx%g, want %gx%g", b.Width, b.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestExampleLayout(t *testing.T) {
	l := Example()
	if len(l.Pages) != 2 || l.Pages[0].Name != "Main" || l.Pages[1].Name != "Commands" {
		t.Fatalf("Example pages = %v", l.Pages)
	}
	if l.ButtonCount() != 9 {
		t.Errorf("ButtonCount() = %d", l.ButtonCount())
	}
	for _, issue := range Validate(l) {
		if issue.Severity >= SeverityWarning {
			t.Errorf("example layout has issue: %s", issue)
		}
	}
}

func TestActionKindKnown(t *testing.T) {
	for _, k := range ActionKinds {
		if !k.Known() {
			t.Errorf("%s not known", k)
		}
	}
	if ActionKind("sendkey").Known() {
		t.Error("action kinds are case-sensitive")
	}
}
