// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MainVertexShader transforms lit, optionally textured geometry.
//
//go:embed main.vert
var MainVertexShader string

// MainFragmentShader shades with base color or texture, a directional light
// and an optional shadow map lookup.
//
//go:embed main.frag
var MainFragmentShader string

// ShadowVertexShader writes light-space depth.
//
//go:embed shadow.vert
var ShadowVertexShader string

// ShadowFragmentShader is empty; only depth is written.
//
//go:embed shadow.frag
var ShadowFragmentShader string

// DebugVertexShader draws wireframe bounds.
//
//go:embed debug.vert
var DebugVertexShader string

// DebugFragmentShader outputs a flat color.
//
//go:embed debug.frag
var DebugFragmentShader string
