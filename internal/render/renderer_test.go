package render_test

import (
	"testing"

	"github.com/zigadel/openxr-zig/internal/render"
)

func mustRender(t *testing.T, r *render.Renderer, raw string, style render.Style) string {
	t.Helper()
	got, err := r.Render(raw, style)
	if err != nil {
		t.Fatalf("Render(%q, %v) failed: %v", raw, style, err)
	}
	return got
}

func TestRender_SnakeScenarios(t *testing.T) {
	r := render.NewRenderer(nil)
	cases := []struct {
		raw  string
		want string
	}{
		{"viewConfigurationType", "view_configuration_type"},
		{"ActionTypeBooleanInput", "action_type_boolean_input"},
		{"XrSwapchainSubImage", "xr_swapchain_sub_image"},
		{"already_snake_case", "already_snake_case"},
	}
	for _, tc := range cases {
		if got := mustRender(t, r, tc.raw, render.Snake); got != tc.want {
			t.Errorf("Render(%q, snake) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestRender_ScreamingSnake(t *testing.T) {
	r := render.NewRenderer(nil)
	if got := mustRender(t, r, "viewConfigurationType", render.ScreamingSnake); got != "VIEW_CONFIGURATION_TYPE" {
		t.Errorf("got %q", got)
	}
}

func TestRender_TagStripAndReattach(t *testing.T) {
	r := render.NewRenderer([]string{"KHR", "EXT"})

	if got := mustRender(t, r, "CompositionLayerDepthTestKHR", render.TitleCamel); got != "CompositionLayerDepthTestKHR" {
		t.Errorf("title_camel = %q, want CompositionLayerDepthTestKHR", got)
	}
	if got := mustRender(t, r, "CompositionLayerDepthTestKHR", render.Snake); got != "composition_layer_depth_test_khr" {
		t.Errorf("snake = %q", got)
	}
	if got := mustRender(t, r, "XR_TYPE_DEBUG_UTILS_MESSENGER_CREATE_INFO_EXT", render.ScreamingSnake); got != "XR_TYPE_DEBUG_UTILS_MESSENGER_CREATE_INFO_EXT" {
		t.Errorf("screaming_snake = %q", got)
	}
}

func TestRender_FallbackTag(t *testing.T) {
	// MNDX has appeared on extension names without a tag table entry.
	r := render.NewRenderer([]string{"KHR"})
	if got := mustRender(t, r, "EglEnableMNDX", render.TitleCamel); got != "EglEnableMNDX" {
		t.Errorf("fallback tag lost: %q", got)
	}
}

func TestRender_AcronymSplit(t *testing.T) {
	r := render.NewRenderer(nil)
	// The acronym keeps its run; the last uppercase starts the next word.
	if got := mustRender(t, r, "OpenGLESGraphics", render.Snake); got != "open_gles_graphics" {
		t.Errorf("got %q", got)
	}
	if got := mustRender(t, r, "OpenGLESGraphics", render.TitleCamel); got != "OpenGlesGraphics" {
		t.Errorf("got %q", got)
	}
}

func TestRender_DigitRuns(t *testing.T) {
	r := render.NewRenderer(nil)
	if got := mustRender(t, r, "Vector3f", render.Snake); got != "vector3f" {
		t.Errorf("got %q", got)
	}
	if got := mustRender(t, r, "uuid128", render.Camel); got != "uuid128" {
		t.Errorf("got %q", got)
	}
	// An uppercase letter after a digit starts a new word; a lowercase
	// letter stays attached to the digit run.
	if got := mustRender(t, r, "Extent2Df", render.TitleCamel); got != "Extent2Df" {
		t.Errorf("got %q", got)
	}
	if got := mustRender(t, r, "Extent2Df", render.Snake); got != "extent2_df" {
		t.Errorf("got %q", got)
	}
	if got := mustRender(t, r, "Vector2f", render.TitleCamel); got != "Vector2f" {
		t.Errorf("got %q", got)
	}
}

func TestRender_CamelFirstWordLowered(t *testing.T) {
	r := render.NewRenderer(nil)
	if got := mustRender(t, r, "InstanceCreateInfo", render.Camel); got != "instanceCreateInfo" {
		t.Errorf("got %q", got)
	}
}

func TestRender_KeywordEscaped(t *testing.T) {
	r := render.NewRenderer(nil)
	if got := mustRender(t, r, "Opaque", render.Snake); got != `@"opaque"` {
		t.Errorf("got %q, want raw-identifier escape", got)
	}
	if got := mustRender(t, r, "type", render.Snake); got != `@"type"` {
		t.Errorf("got %q, want raw-identifier escape", got)
	}
}

func TestRender_PrimitivePatternEscaped(t *testing.T) {
	r := render.NewRenderer(nil)
	// A lone i/u prefix followed only by digits collides with Zig's
	// arbitrary-width integer spellings.
	if got := mustRender(t, r, "U32", render.Snake); got != `@"u32"` {
		t.Errorf("got %q", got)
	}
	if got := mustRender(t, r, "I64", render.Snake); got != `@"i64"` {
		t.Errorf("got %q", got)
	}
	// Not a primitive pattern: digits followed by letters.
	if got := mustRender(t, r, "u32x4", render.Snake); got != "u32x4" {
		t.Errorf("got %q", got)
	}
}

func TestRender_Idempotent(t *testing.T) {
	r := render.NewRenderer([]string{"KHR"})
	inputs := []struct {
		raw   string
		style render.Style
	}{
		{"viewConfigurationType", render.Snake},
		{"CompositionLayerDepthTestKHR", render.TitleCamel},
		{"Opaque", render.Snake},
		{"XR_TYPE_INSTANCE_CREATE_INFO", render.ScreamingSnake},
	}
	for _, tc := range inputs {
		once := mustRender(t, r, tc.raw, tc.style)
		twice := mustRender(t, r, once, tc.style)
		if once != twice {
			t.Errorf("render of %q not idempotent: %q -> %q", tc.raw, once, twice)
		}
	}
}

func TestRender_CopyOutContract(t *testing.T) {
	r := render.NewRenderer(nil)
	first, err := r.RenderBytes("viewConfigurationType", render.Snake)
	if err != nil {
		t.Fatal(err)
	}
	copied := string(first)
	// The next call may reuse the scratch buffer.
	if _, err := r.RenderBytes("ActionTypeBooleanInput", render.Snake); err != nil {
		t.Fatal(err)
	}
	if copied != "view_configuration_type" {
		t.Errorf("copied-out value corrupted: %q", copied)
	}
}

func TestRender_OverlongIdentifier(t *testing.T) {
	r := render.NewRenderer(nil)
	huge := make([]byte, 5000)
	for i := range huge {
		huge[i] = 'a'
	}
	if _, err := r.Render(string(huge), render.Snake); err == nil {
		t.Fatal("over-long identifier should fail")
	}
}
