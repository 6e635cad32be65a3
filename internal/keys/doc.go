// Package keys resolves the key tokens written in button values.
//
// A chord is written as tokens joined by "+", for example "CTRL+SHIFT+ESC" or
// "ALT+F4". Each token resolves, in order, through:
//
//  1. the alias table (ALT, CTRL, SHIFT, WIN, ENTER, ESC, BACKSPACE/BS, TAB,
//     DEL, INS, PGUP, PGDN, HOME, END)
//  2. the symbolic virtual-key namespace, case-insensitive ("RETURN", "lwin")
//  3. the namespace with the "VK_" prefix added ("a" -> VK_A, "1" -> VK_1)
//
// One unresolvable token invalidates the whole chord. The namespace is a
// static table; numeric strings are not accepted as names.
package keys
