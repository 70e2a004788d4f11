package genpipeline_test

import (
	"context"
	"strings"
	"testing"

	"github.com/zigadel/openxr-zig/internal/genpipeline"
	"github.com/zigadel/openxr-zig/internal/source"
)

const pipelineFixture = `<registry>
  <tags>
    <tag name="KHR" author="Khronos" contact=""/>
  </tags>
  <types>
    <type category="handle"><type>XR_DEFINE_HANDLE</type>(<name>XrInstance</name>)</type>
    <type category="enum" name="XrResult"/>
    <type category="struct" name="XrExtensionProperties">
      <member><type>uint32_t</type> <name>extensionVersion</name></member>
    </type>
    <type category="struct" name="XrEventBufferACME">
      <member><type>uint32_t</type> <name>count</name></member>
    </type>
  </types>
  <enums name="XrResult">
    <enum value="0" name="XR_SUCCESS"/>
    <enum value="-2" name="XR_ERROR_RUNTIME_FAILURE"/>
  </enums>
  <commands>
    <command successcodes="XR_SUCCESS" errorcodes="XR_ERROR_RUNTIME_FAILURE">
      <proto><type>XrResult</type> <name>xrDestroyInstance</name></proto>
      <param><type>XrInstance</type> <name>instance</name></param>
    </command>
  </commands>
</registry>
`

type recordingSink struct {
	events []genpipeline.Event
}

func (r *recordingSink) OnEvent(evt genpipeline.Event) {
	r.events = append(r.events, evt)
}

func (r *recordingSink) statuses(stage genpipeline.Stage) []genpipeline.Status {
	var out []genpipeline.Status
	for _, evt := range r.events {
		if evt.Stage == stage {
			out = append(out, evt.Status)
		}
	}
	return out
}

func TestGenerate_AllStages(t *testing.T) {
	sink := &recordingSink{}
	res, err := genpipeline.Generate(context.Background(), &genpipeline.Request{
		Document: source.NewDocument("xr.xml", []byte(pipelineFixture)),
		Progress: sink,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if res.Registry == nil || res.Order == nil {
		t.Fatal("result missing parse/resolve artefacts")
	}
	if len(res.Wrappers) != 1 {
		t.Fatalf("wrapper count = %d, want 1", len(res.Wrappers))
	}
	if !strings.Contains(res.Source, "pub const Instance = enum(usize) {") {
		t.Error("emitted source missing handle declaration")
	}

	for _, stage := range []genpipeline.Stage{
		genpipeline.StageParse,
		genpipeline.StageResolve,
		genpipeline.StageLower,
		genpipeline.StageEmit,
	} {
		got := sink.statuses(stage)
		want := []genpipeline.Status{
			genpipeline.StatusQueued,
			genpipeline.StatusWorking,
			genpipeline.StatusDone,
		}
		if len(got) != len(want) {
			t.Fatalf("stage %s events = %v", stage, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("stage %s event[%d] = %s, want %s", stage, i, got[i], want[i])
			}
		}
		if !res.Timings.Has(stage) {
			t.Errorf("stage %s has no recorded timing", stage)
		}
	}
}

func TestGenerate_ExtraTagsExtendRenderer(t *testing.T) {
	res, err := genpipeline.Generate(context.Background(), &genpipeline.Request{
		Document:  source.NewDocument("xr.xml", []byte(pipelineFixture)),
		ExtraTags: []string{"ACME"},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(res.Source, "pub const EventBufferACME") {
		t.Error("extra tag not honored by the renderer")
	}
	// The tag table of the parsed model stays as the document declares it.
	if got := res.Registry.TagNames(); len(got) != 1 || got[0] != "KHR" {
		t.Errorf("parsed tag table changed: %v", got)
	}
}

func TestGenerate_ParseFailureStopsPipeline(t *testing.T) {
	sink := &recordingSink{}
	_, err := genpipeline.Generate(context.Background(), &genpipeline.Request{
		Document: source.NewDocument("bad.xml", []byte(`<registry><types></types></registry>`)),
		Progress: sink,
	})
	if err == nil {
		t.Fatal("Generate should have failed on a registry without tags")
	}

	parse := sink.statuses(genpipeline.StageParse)
	if len(parse) == 0 || parse[len(parse)-1] != genpipeline.StatusError {
		t.Errorf("parse stage statuses = %v, want trailing error", parse)
	}
	resolve := sink.statuses(genpipeline.StageResolve)
	for _, status := range resolve {
		if status == genpipeline.StatusWorking || status == genpipeline.StatusDone {
			t.Errorf("resolve stage ran after parse failure: %v", resolve)
		}
	}
}

func TestGenerate_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := genpipeline.Generate(ctx, &genpipeline.Request{
		Document: source.NewDocument("xr.xml", []byte(pipelineFixture)),
	})
	if err == nil {
		t.Fatal("Generate should fail on a cancelled context")
	}
}

func TestGenerate_NilRequest(t *testing.T) {
	if _, err := genpipeline.Generate(context.Background(), nil); err == nil {
		t.Fatal("Generate should reject a nil request")
	}
}
