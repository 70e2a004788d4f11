package emit_test

import (
	"strings"
	"testing"

	"github.com/zigadel/openxr-zig/internal/emit"
	"github.com/zigadel/openxr-zig/internal/lower"
	"github.com/zigadel/openxr-zig/internal/registry"
	"github.com/zigadel/openxr-zig/internal/source"
	"github.com/zigadel/openxr-zig/internal/typegraph"
)

const emitFixture = `<registry>
  <tags>
    <tag name="KHR" author="Khronos" contact=""/>
  </tags>
  <types>
    <type category="basetype">typedef <type>uint32_t</type> <name>XrBool32</name>;</type>
    <type category="basetype">XR_DEFINE_ATOM(<name>XrPath</name>)</type>
    <type category="handle"><type>XR_DEFINE_HANDLE</type>(<name>XrInstance</name>)</type>
    <type category="handle" parent="XrInstance"><type>XR_DEFINE_HANDLE</type>(<name>XrSession</name>)</type>
    <type category="bitmask" bitvalues="XrSwapchainUsageFlagBits">typedef <type>XrFlags64</type> <name>XrSwapchainUsageFlags</name>;</type>
    <type category="enum" name="XrStructureType"/>
    <type category="enum" name="XrResult"/>
    <type category="struct" name="XrVector3f">
      <member><type>float</type> <name>x</name></member>
      <member><type>float</type> <name>y</name></member>
      <member><type>float</type> <name>z</name></member>
    </type>
    <type category="struct" name="XrApplicationInfo">
      <member><type>char</type> <name>applicationName</name>[<enum>XR_MAX_APPLICATION_NAME_SIZE</enum>]</member>
      <member><type>uint32_t</type> <name>applicationVersion</name></member>
    </type>
    <type category="struct" name="XrInstanceCreateInfo">
      <member values="XR_TYPE_INSTANCE_CREATE_INFO"><type>XrStructureType</type> <name>type</name></member>
      <member optional="true">const <type>void</type>* <name>next</name></member>
      <member len="enabledExtensionCount,null-terminated" optional="true">const <type>char</type>* const* <name>enabledExtensionNames</name></member>
      <member optional="true"><type>uint32_t</type> <name>enabledExtensionCount</name></member>
    </type>
    <type category="define">#define <name>XR_CURRENT_API_VERSION</name> <type>XR_MAKE_VERSION</type>(1, 0, 34)</type>
    <type category="funcpointer">typedef void (XRAPI_PTR *<name>PFN_xrVoidFunction</name>)(void);</type>
  </types>
  <enums name="XrStructureType">
    <enum value="3" name="XR_TYPE_INSTANCE_CREATE_INFO"/>
  </enums>
  <enums name="XrResult">
    <enum value="0" name="XR_SUCCESS"/>
    <enum value="3" name="XR_SESSION_LOSS_PENDING"/>
    <enum value="-1" name="XR_ERROR_VALIDATION_FAILURE"/>
    <enum value="-2" name="XR_ERROR_RUNTIME_FAILURE"/>
  </enums>
  <enums name="XrSwapchainUsageFlagBits" type="bitmask">
    <enum bitpos="0" name="XR_SWAPCHAIN_USAGE_COLOR_ATTACHMENT_BIT"/>
    <enum bitpos="1" name="XR_SWAPCHAIN_USAGE_DEPTH_STENCIL_ATTACHMENT_BIT"/>
  </enums>
  <enums name="API Constants">
    <enum value="64" name="XR_MAX_APPLICATION_NAME_SIZE"/>
  </enums>
  <commands>
    <command successcodes="XR_SUCCESS" errorcodes="XR_ERROR_VALIDATION_FAILURE">
      <proto><type>XrResult</type> <name>xrGetInstanceProcAddr</name></proto>
      <param optional="true"><type>XrInstance</type> <name>instance</name></param>
      <param len="null-terminated">const <type>char</type>* <name>name</name></param>
      <param><type>PFN_xrVoidFunction</type>* <name>function</name></param>
    </command>
    <command successcodes="XR_SUCCESS,XR_SESSION_LOSS_PENDING" errorcodes="XR_ERROR_RUNTIME_FAILURE">
      <proto><type>XrResult</type> <name>xrCreateSession</name></proto>
      <param><type>XrInstance</type> <name>instance</name></param>
      <param>const <type>XrInstanceCreateInfo</type>* <name>createInfo</name></param>
      <param><type>XrSession</type>* <name>session</name></param>
    </command>
    <command successcodes="XR_SUCCESS" errorcodes="XR_ERROR_RUNTIME_FAILURE">
      <proto><type>XrResult</type> <name>xrEnumerateSwapchainFormats</name></proto>
      <param><type>XrSession</type> <name>session</name></param>
      <param><type>uint32_t</type> <name>formatCapacityInput</name></param>
      <param><type>uint32_t</type>* <name>formatCountOutput</name></param>
      <param optional="true" len="formatCapacityInput"><type>int64_t</type>* <name>formats</name></param>
    </command>
  </commands>
  <feature api="openxr" name="XR_VERSION_1_0" number="1.0">
    <require>
      <type name="XrInstanceCreateInfo"/>
      <command name="xrCreateSession"/>
    </require>
  </feature>
  <extensions>
    <extension name="XR_KHR_composition_layer_depth" number="11" type="instance" supported="openxr">
      <require>
        <enum value="1" name="XR_KHR_composition_layer_depth_SPEC_VERSION"/>
        <enum value="&quot;XR_KHR_composition_layer_depth&quot;" name="XR_KHR_COMPOSITION_LAYER_DEPTH_EXTENSION_NAME"/>
        <enum offset="3" extends="XrResult" dir="-1" name="XR_ERROR_LAYER_DEPTH_UNSUPPORTED_KHR"/>
      </require>
    </extension>
  </extensions>
</registry>
`

func emitFixtureModule(t *testing.T) string {
	t.Helper()
	doc := source.NewDocument("fixture.xml", []byte(emitFixture))
	reg, err := registry.Parse(doc, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ord, err := typegraph.Resolve(reg, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	wraps, err := lower.LowerAll(reg, nil)
	if err != nil {
		t.Fatalf("LowerAll failed: %v", err)
	}
	out, err := emit.New(emit.Input{
		Registry:   reg,
		Order:      ord,
		Wrappers:   wraps,
		Partitions: lower.PartitionResults(reg),
	}).EmitModule()
	if err != nil {
		t.Fatalf("EmitModule failed: %v", err)
	}
	return out
}

func wantFragments(t *testing.T, out string, fragments []string) {
	t.Helper()
	for _, frag := range fragments {
		if !strings.Contains(out, frag) {
			t.Errorf("output missing %q", frag)
		}
	}
}

func TestEmit_VersionAndConstants(t *testing.T) {
	out := emitFixtureModule(t)
	wantFragments(t, out, []string{
		"pub const Version = packed struct(u64) {",
		"pub const CURRENT_API_VERSION = Version{ .major = 1, .minor = 0, .patch = 34 };",
		"pub const MAX_APPLICATION_NAME_SIZE = 64;",
		"pub const KHR_COMPOSITION_LAYER_DEPTH_SPEC_VERSION = 1;",
		"pub const KHR_COMPOSITION_LAYER_DEPTH_EXTENSION_NAME = \"XR_KHR_composition_layer_depth\";",
	})
}

func TestEmit_Enums(t *testing.T) {
	out := emitFixtureModule(t)
	wantFragments(t, out, []string{
		"pub const Result = enum(i32) {",
		"    success = 0,",
		"    session_loss_pending = 3,",
		"    error_validation_failure = -1,",
		"    error_layer_depth_unsupported_khr = -1000010003,",
		"pub const StructureType = enum(i32) {",
		"    instance_create_info = 3,",
	})
	if !strings.Contains(out, "    _,\n};") {
		t.Error("enums should be non-exhaustive")
	}
}

func TestEmit_Flags(t *testing.T) {
	out := emitFixtureModule(t)
	wantFragments(t, out, []string{
		"pub const SwapchainUsageFlags = packed struct(u64) {",
		"    color_attachment: bool = false,",
		"    depth_stencil_attachment: bool = false,",
		"    _reserved_bit_2: bool = false,",
		"    _reserved_bit_63: bool = false,",
		"    const declared_bits: u64 = 0x3;",
		"    pub fn complement(self: SwapchainUsageFlags) SwapchainUsageFlags {",
		"        return fromInt(~self.toInt() & declared_bits);",
		"    pub fn contains(self: SwapchainUsageFlags, other: SwapchainUsageFlags) bool {",
	})
}

func TestEmit_Handles(t *testing.T) {
	out := emitFixtureModule(t)
	wantFragments(t, out, []string{
		"pub const Instance = enum(usize) {",
		"pub const Session = enum(usize) {",
		"pub const Path = enum(u64) {",
		"    null_handle = 0,",
	})
}

func TestEmit_Structs(t *testing.T) {
	out := emitFixtureModule(t)
	wantFragments(t, out, []string{
		"pub const Bool32 = u32;",
		"pub const Vector3f = extern struct {",
		"    x: f32 = 0,",
		"pub const ApplicationInfo = extern struct {",
		"    application_name: [MAX_APPLICATION_NAME_SIZE]u8,",
		"pub const InstanceCreateInfo = extern struct {",
		"    @\"type\": StructureType = .instance_create_info,",
		"    next: ?*const anyopaque = null,",
		"    enabled_extension_names: ?[*]const [*:0]const u8,",
		"    pub fn empty() InstanceCreateInfo {",
		"        value.@\"type\" = .instance_create_info;",
		"        value.next = null;",
	})
}

func TestEmit_FunctionPointers(t *testing.T) {
	out := emitFixtureModule(t)
	wantFragments(t, out, []string{
		"pub const PfnVoidFunction = ?*const fn () callconv(.c) void;",
		"pub const PfnGetInstanceProcAddr = *const fn (instance: Instance, name: [*:0]const u8, function: *PfnVoidFunction) callconv(.c) Result;",
		"pub const PfnCreateSession = *const fn (instance: Instance, create_info: *const InstanceCreateInfo, session: *Session) callconv(.c) Result;",
	})
}

func TestEmit_ErrorSets(t *testing.T) {
	out := emitFixtureModule(t)
	wantFragments(t, out, []string{
		"pub const CreateSessionError = error{",
		"    RuntimeFailure,",
		"    SessionLossPending,",
		"    Unknown,",
		"pub const GetInstanceProcAddrError = error{",
		"    ValidationFailure,",
	})
}

func TestEmit_DispatchTables(t *testing.T) {
	out := emitFixtureModule(t)
	wantFragments(t, out, []string{
		"pub const BaseDispatch = struct {",
		"        xrGetInstanceProcAddr: PfnGetInstanceProcAddr,",
		"    pub fn load(get_proc_addr: PfnGetInstanceProcAddr) error{CommandLoadFailure}!BaseDispatch {",
		"        const instance = Instance.null_handle;",
		"pub const InstanceDispatch = struct {",
		"        xrCreateSession: PfnCreateSession,",
		"    pub fn load(instance: Instance, get_proc_addr: PfnGetInstanceProcAddr) error{CommandLoadFailure}!InstanceDispatch {",
		"        self.dispatch.xrCreateSession = @ptrCast(try fetchCommand(get_proc_addr, instance, \"xrCreateSession\"));",
	})
}

func TestEmit_Wrappers(t *testing.T) {
	out := emitFixtureModule(t)
	wantFragments(t, out, []string{
		"    pub fn createSession(self: InstanceDispatch, instance: Instance, create_info: *const InstanceCreateInfo) CreateSessionError!Session {",
		"        var session: Session = undefined;",
		"        const result = self.dispatch.xrCreateSession(instance, create_info, &session);",
		"            .success => {},",
		"            .session_loss_pending => return error.SessionLossPending,",
		"            .error_runtime_failure => return error.RuntimeFailure,",
		"            else => return error.Unknown,",
		"        return session;",
		"    pub fn enumerateSwapchainFormats(self: InstanceDispatch, session: Session, formats: []i64) EnumerateSwapchainFormatsError!u32 {",
		"        var format_count_output: u32 = undefined;",
		"        const result = self.dispatch.xrEnumerateSwapchainFormats(session, @intCast(formats.len), &format_count_output, formats.ptr);",
		"        return format_count_output;",
	})
}
