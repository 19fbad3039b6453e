// Package manifest loads script declarations from HCL files.
//
// A manifest declares one or more scripts:
//
//	script "Player" {
//	  tool = true
//	  icon = "res://player.svg"
//
//	  signal "died" {}
//
//	  export "speed" {
//	    type        = "float"
//	    hint        = 1
//	    hint_string = "0,100"
//	  }
//
//	  onready "sprite" {
//	    expr = "$Sprite2D"
//	  }
//	}
//
// Member blocks are applied in source order, so the resulting declaration
// table lists them exactly as written.
package manifest
