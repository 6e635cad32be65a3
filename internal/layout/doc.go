// Package layout holds the keyboard data model and its YAML persistence.
//
// A Layout is an ordered list of Pages; a Page is an ordered list of Buttons.
// Order is significant: page order drives NextPage/PreviousPage and the
// initial page, button order is display order only. Page names are not
// required to be unique; lookups take the first case-insensitive match.
//
// # Document Format
//
// Layouts are stored as YAML with camelCase keys in a fixed order:
//
//	name: Example Keyboard
//	width: 1000
//	height: 600
//	windowX: 100
//	windowY: 100
//	gridRows: 10
//	gridCols: 10
//	gridEnabled: true
//	gridVisible: false
//	pages:
//	  - name: Main
//	    buttons:
//	      - text: Copy
//	        color: '#87CEEB'
//	        textColor: '#000000'
//	        fontSize: 14
//	        isBold: false
//	        width: 80
//	        height: 80
//	        x: 250
//	        y: 50
//	        action: CommandKey
//	        value: CTRL+C
//
// # Loading
//
// Load distinguishes three outcomes: a missing file returns (nil, nil), an
// unreadable or malformed file returns a *StoreError, and a valid file
// returns the layout. AutoLoad is the forgiving startup variant that falls
// back to Default() and only logs failures.
//
// # Saving
//
// Save creates missing directories and replaces the destination through a
// temporary file and rename. Saves are not locked against each other.
package layout
