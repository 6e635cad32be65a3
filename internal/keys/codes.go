package keys

import "strconv"

// Code is a symbolic virtual-key code. Values follow the Windows virtual-key
// numbering so layouts authored against that namespace keep their meaning.
type Code uint8

// None is the zero Code; it never resolves from a token.
const None Code = 0

// Frequently referenced codes.
const (
	Back     Code = 0x08
	Tab      Code = 0x09
	Return   Code = 0x0D
	Shift    Code = 0x10
	Control  Code = 0x11
	Menu     Code = 0x12
	Escape   Code = 0x1B
	Space    Code = 0x20
	Prior    Code = 0x21
	Next     Code = 0x22
	End      Code = 0x23
	Home     Code = 0x24
	Insert   Code = 0x2D
	Delete   Code = 0x2E
	LWin     Code = 0x5B
	RWin     Code = 0x5C
	LShift   Code = 0xA0
	RShift   Code = 0xA1
	LControl Code = 0xA2
	RControl Code = 0xA3
	LMenu    Code = 0xA4
	RMenu    Code = 0xA5
)

type namedCode struct {
	name string
	code Code
}

// namespace lists every symbolic name. Where several names share a value
// (KANA/HANGEUL/HANGUL, HANJA/KANJI) the first one is canonical.
var namespace = []namedCode{
	{"LBUTTON", 0x01}, {"RBUTTON", 0x02}, {"CANCEL", 0x03}, {"MBUTTON", 0x04},
	{"XBUTTON1", 0x05}, {"XBUTTON2", 0x06}, {"BACK", Back}, {"TAB", Tab},
	{"CLEAR", 0x0C}, {"RETURN", Return}, {"SHIFT", Shift}, {"CONTROL", Control},
	{"MENU", Menu}, {"PAUSE", 0x13}, {"CAPITAL", 0x14}, {"KANA", 0x15},
	{"HANGEUL", 0x15}, {"HANGUL", 0x15}, {"JUNJA", 0x17}, {"FINAL", 0x18},
	{"HANJA", 0x19}, {"KANJI", 0x19}, {"ESCAPE", Escape}, {"CONVERT", 0x1C},
	{"NONCONVERT", 0x1D}, {"ACCEPT", 0x1E}, {"MODECHANGE", 0x1F}, {"SPACE", Space},
	{"PRIOR", Prior}, {"NEXT", Next}, {"END", End}, {"HOME", Home},
	{"LEFT", 0x25}, {"UP", 0x26}, {"RIGHT", 0x27}, {"DOWN", 0x28},
	{"SELECT", 0x29}, {"PRINT", 0x2A}, {"EXECUTE", 0x2B}, {"SNAPSHOT", 0x2C},
	{"INSERT", Insert}, {"DELETE", Delete}, {"HELP", 0x2F},
	{"VK_0", 0x30}, {"VK_1", 0x31}, {"VK_2", 0x32}, {"VK_3", 0x33}, {"VK_4", 0x34},
	{"VK_5", 0x35}, {"VK_6", 0x36}, {"VK_7", 0x37}, {"VK_8", 0x38}, {"VK_9", 0x39},
	{"VK_A", 0x41}, {"VK_B", 0x42}, {"VK_C", 0x43}, {"VK_D", 0x44}, {"VK_E", 0x45},
	{"VK_F", 0x46}, {"VK_G", 0x47}, {"VK_H", 0x48}, {"VK_I", 0x49}, {"VK_J", 0x4A},
	{"VK_K", 0x4B}, {"VK_L", 0x4C}, {"VK_M", 0x4D}, {"VK_N", 0x4E}, {"VK_O", 0x4F},
	{"VK_P", 0x50}, {"VK_Q", 0x51}, {"VK_R", 0x52}, {"VK_S", 0x53}, {"VK_T", 0x54},
	{"VK_U", 0x55}, {"VK_V", 0x56}, {"VK_W", 0x57}, {"VK_X", 0x58}, {"VK_Y", 0x59},
	{"VK_Z", 0x5A},
	{"LWIN", LWin}, {"RWIN", RWin}, {"APPS", 0x5D}, {"SLEEP", 0x5F},
	{"NUMPAD0", 0x60}, {"NUMPAD1", 0x61}, {"NUMPAD2", 0x62}, {"NUMPAD3", 0x63},
	{"NUMPAD4", 0x64}, {"NUMPAD5", 0x65}, {"NUMPAD6", 0x66}, {"NUMPAD7", 0x67},
	{"NUMPAD8", 0x68}, {"NUMPAD9", 0x69},
	{"MULTIPLY", 0x6A}, {"ADD", 0x6B}, {"SEPARATOR", 0x6C}, {"SUBTRACT", 0x6D},
	{"DECIMAL", 0x6E}, {"DIVIDE", 0x6F},
	{"F1", 0x70}, {"F2", 0x71}, {"F3", 0x72}, {"F4", 0x73}, {"F5", 0x74}, {"F6", 0x75},
	{"F7", 0x76}, {"F8", 0x77}, {"F9", 0x78}, {"F10", 0x79}, {"F11", 0x7A}, {"F12", 0x7B},
	{"F13", 0x7C}, {"F14", 0x7D}, {"F15", 0x7E}, {"F16", 0x7F}, {"F17", 0x80}, {"F18", 0x81},
	{"F19", 0x82}, {"F20", 0x83}, {"F21", 0x84}, {"F22", 0x85}, {"F23", 0x86}, {"F24", 0x87},
	{"NUMLOCK", 0x90}, {"SCROLL", 0x91},
	{"LSHIFT", LShift}, {"RSHIFT", RShift}, {"LCONTROL", LControl}, {"RCONTROL", RControl},
	{"LMENU", LMenu}, {"RMENU", RMenu},
	{"BROWSER_BACK", 0xA6}, {"BROWSER_FORWARD", 0xA7}, {"BROWSER_REFRESH", 0xA8},
	{"BROWSER_STOP", 0xA9}, {"BROWSER_SEARCH", 0xAA}, {"BROWSER_FAVORITES", 0xAB},
	{"BROWSER_HOME", 0xAC}, {"VOLUME_MUTE", 0xAD}, {"VOLUME_DOWN", 0xAE},
	{"VOLUME_UP", 0xAF}, {"MEDIA_NEXT_TRACK", 0xB0}, {"MEDIA_PREV_TRACK", 0xB1},
	{"MEDIA_STOP", 0xB2}, {"MEDIA_PLAY_PAUSE", 0xB3}, {"LAUNCH_MAIL", 0xB4},
	{"LAUNCH_MEDIA_SELECT", 0xB5}, {"LAUNCH_APP1", 0xB6}, {"LAUNCH_APP2", 0xB7},
	{"OEM_1", 0xBA}, {"OEM_PLUS", 0xBB}, {"OEM_COMMA", 0xBC}, {"OEM_MINUS", 0xBD},
	{"OEM_PERIOD", 0xBE}, {"OEM_2", 0xBF}, {"OEM_3", 0xC0}, {"OEM_4", 0xDB},
	{"OEM_5", 0xDC}, {"OEM_6", 0xDD}, {"OEM_7", 0xDE}, {"OEM_8", 0xDF},
	{"OEM_102", 0xE2}, {"PROCESSKEY", 0xE5}, {"PACKET", 0xE7}, {"ATTN", 0xF6},
	{"CRSEL", 0xF7}, {"EXSEL", 0xF8}, {"EREOF", 0xF9}, {"PLAY", 0xFA},
	{"ZOOM", 0xFB}, {"NONAME", 0xFC}, {"PA1", 0xFD}, {"OEM_CLEAR", 0xFE},
}

var (
	byName map[string]Code
	byCode map[Code]string
)

func init() {
	byName = make(map[string]Code, len(namespace))
	byCode = make(map[Code]string, len(namespace))
	for _, nc := range namespace {
		byName[nc.name] = nc.code
		if _, ok := byCode[nc.code]; !ok {
			byCode[nc.code] = nc.name
		}
	}
}

// Name returns the canonical symbolic name of c, or "" if c is not in the
// namespace.
func (c Code) Name() string {
	return byCode[c]
}

// String implements fmt.Stringer.
func (c Code) String() string {
	if name := c.Name(); name != "" {
		return name
	}
	return "Code(" + strconv.Itoa(int(c)) + ")"
}

// Names returns every symbolic name in table order.
func Names() []string {
	names := make([]string, len(namespace))
	for i, nc := range namespace {
		names[i] = nc.name
	}
	return names
}
