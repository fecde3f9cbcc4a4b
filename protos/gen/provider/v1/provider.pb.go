// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        (unknown)
// source: provider/v1/provider.proto

package providerv1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	timestamppb "google.golang.org/protobuf/types/known/timestamppb"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type DayScheduleRequest struct {
	state      protoimpl.MessageState `protogen:"open.v1"`
	ProviderId string                 `protobuf:"bytes,1,opt,name=provider_id,json=providerId,proto3" json:"provider_id,omitempty"`
	// Calendar date in YYYY-MM-DD form, interpreted in the provider's timezone.
	Date          string `protobuf:"bytes,2,opt,name=date,proto3" json:"date,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *DayScheduleRequest) Reset() {
	*x = DayScheduleRequest{}
	mi := &file_provider_v1_provider_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *DayScheduleRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*DayScheduleRequest) ProtoMessage() {}

func (x *DayScheduleRequest) ProtoReflect() protoreflect.Message {
	mi := &file_provider_v1_provider_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use DayScheduleRequest.ProtoReflect.Descriptor instead.
func (*DayScheduleRequest) Descriptor() ([]byte, []int) {
	return file_provider_v1_provider_proto_rawDescGZIP(), []int{0}
}

func (x *DayScheduleRequest) GetProviderId() string {
	if x != nil {
		return x.ProviderId
	}
	return ""
}

func (x *DayScheduleRequest) GetDate() string {
	if x != nil {
		return x.Date
	}
	return ""
}

type DayScheduleResponse struct {
	state      protoimpl.MessageState `protogen:"open.v1"`
	ProviderId string                 `protobuf:"bytes,1,opt,name=provider_id,json=providerId,proto3" json:"provider_id,omitempty"`
	Date       string                 `protobuf:"bytes,2,opt,name=date,proto3" json:"date,omitempty"`
	Working    bool                   `protobuf:"varint,3,opt,name=working,proto3" json:"working,omitempty"`
	// Minutes from midnight. break_start == break_end means no break.
	StartMinute int32 `protobuf:"varint,4,opt,name=start_minute,json=startMinute,proto3" json:"start_minute,omitempty"`
	EndMinute   int32 `protobuf:"varint,5,opt,name=end_minute,json=endMinute,proto3" json:"end_minute,omitempty"`
	BreakStart  int32 `protobuf:"varint,6,opt,name=break_start,json=breakStart,proto3" json:"break_start,omitempty"`
	BreakEnd    int32 `protobuf:"varint,7,opt,name=break_end,json=breakEnd,proto3" json:"break_end,omitempty"`
	SlotMinutes int32 `protobuf:"varint,8,opt,name=slot_minutes,json=slotMinutes,proto3" json:"slot_minutes,omitempty"`
	// "weekly" or "override".
	Source string `protobuf:"bytes,9,opt,name=source,proto3" json:"source,omitempty"`
	// UTC instants of the working window on the requested date. Unset when the
	// day is not working.
	StartUtc      *timestamppb.Timestamp `protobuf:"bytes,10,opt,name=start_utc,json=startUtc,proto3" json:"start_utc,omitempty"`
	EndUtc        *timestamppb.Timestamp `protobuf:"bytes,11,opt,name=end_utc,json=endUtc,proto3" json:"end_utc,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *DayScheduleResponse) Reset() {
	*x = DayScheduleResponse{}
	mi := &file_provider_v1_provider_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *DayScheduleResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*DayScheduleResponse) ProtoMessage() {}

func (x *DayScheduleResponse) ProtoReflect() protoreflect.Message {
	mi := &file_provider_v1_provider_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use DayScheduleResponse.ProtoReflect.Descriptor instead.
func (*DayScheduleResponse) Descriptor() ([]byte, []int) {
	return file_provider_v1_provider_proto_rawDescGZIP(), []int{1}
}

func (x *DayScheduleResponse) GetProviderId() string {
	if x != nil {
		return x.ProviderId
	}
	return ""
}

func (x *DayScheduleResponse) GetDate() string {
	if x != nil {
		return x.Date
	}
	return ""
}

func (x *DayScheduleResponse) GetWorking() bool {
	if x != nil {
		return x.Working
	}
	return false
}

func (x *DayScheduleResponse) GetStartMinute() int32 {
	if x != nil {
		return x.StartMinute
	}
	return 0
}

func (x *DayScheduleResponse) GetEndMinute() int32 {
	if x != nil {
		return x.EndMinute
	}
	return 0
}

func (x *DayScheduleResponse) GetBreakStart() int32 {
	if x != nil {
		return x.BreakStart
	}
	return 0
}

func (x *DayScheduleResponse) GetBreakEnd() int32 {
	if x != nil {
		return x.BreakEnd
	}
	return 0
}

func (x *DayScheduleResponse) GetSlotMinutes() int32 {
	if x != nil {
		return x.SlotMinutes
	}
	return 0
}

func (x *DayScheduleResponse) GetSource() string {
	if x != nil {
		return x.Source
	}
	return ""
}

func (x *DayScheduleResponse) GetStartUtc() *timestamppb.Timestamp {
	if x != nil {
		return x.StartUtc
	}
	return nil
}

func (x *DayScheduleResponse) GetEndUtc() *timestamppb.Timestamp {
	if x != nil {
		return x.EndUtc
	}
	return nil
}

var File_provider_v1_provider_proto protoreflect.FileDescriptor

const file_provider_v1_provider_proto_rawDesc = "" +
	"\n" +
	"\x1aprovider/v1/provider.proto\x12\vprovider.v1\x1a\x1fgoogle/protobuf/timestamp.proto\"I\n" +
	"\x12DayScheduleRequest\x12\x1f\n" +
	"\vprovider_id\x18\x01 \x01(\tR\n" +
	"providerId\x12\x12\n" +
	"\x04date\x18\x02 \x01(\tR\x04date\"\x8d\x03\n" +
	"\x13DayScheduleResponse\x12\x1f\n" +
	"\vprovider_id\x18\x01 \x01(\tR\n" +
	"providerId\x12\x12\n" +
	"\x04date\x18\x02 \x01(\tR\x04date\x12\x18\n" +
	"\aworking\x18\x03 \x01(\bR\aworking\x12!\n" +
	"\fstart_minute\x18\x04 \x01(\x05R\vstartMinute\x12\x1d\n" +
	"\n" +
	"end_minute\x18\x05 \x01(\x05R\tendMinute\x12\x1f\n" +
	"\vbreak_start\x18\x06 \x01(\x05R\n" +
	"breakStart\x12\x1b\n" +
	"\tbreak_end\x18\a \x01(\x05R\bbreakEnd\x12!\n" +
	"\fslot_minutes\x18\b \x01(\x05R\vslotMinutes\x12\x16\n" +
	"\x06source\x18\t \x01(\tR\x06source\x127\n" +
	"\tstart_utc\x18\n" +
	" \x01(\v2\x1a.google.protobuf.TimestampR\bstartUtc\x123\n" +
	"\aend_utc\x18\v \x01(\v2\x1a.google.protobuf.TimestampR\x06endUtc2f\n" +
	"\x0fProviderService\x12S\n" +
	"\x0eGetDaySchedule\x12\x1f.provider.v1.DayScheduleRequest\x1a .provider.v1.DayScheduleResponseBBZ@github.com/mbyo2/healthconnect/protos/gen/provider/v1;providerv1b\x06proto3"

var (
	file_provider_v1_provider_proto_rawDescOnce sync.Once
	file_provider_v1_provider_proto_rawDescData []byte
)

func file_provider_v1_provider_proto_rawDescGZIP() []byte {
	file_provider_v1_provider_proto_rawDescOnce.Do(func() {
		file_provider_v1_provider_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_provider_v1_provider_proto_rawDesc), len(file_provider_v1_provider_proto_rawDesc)))
	})
	return file_provider_v1_provider_proto_rawDescData
}

var file_provider_v1_provider_proto_msgTypes = make([]protoimpl.MessageInfo, 2)
var file_provider_v1_provider_proto_goTypes = []any{
	(*DayScheduleRequest)(nil),    // 0: provider.v1.DayScheduleRequest
	(*DayScheduleResponse)(nil),   // 1: provider.v1.DayScheduleResponse
	(*timestamppb.Timestamp)(nil), // 2: google.protobuf.Timestamp
}
var file_provider_v1_provider_proto_depIdxs = []int32{
	2, // 0: provider.v1.DayScheduleResponse.start_utc:type_name -> google.protobuf.Timestamp
	2, // 1: provider.v1.DayScheduleResponse.end_utc:type_name -> google.protobuf.Timestamp
	0, // 2: provider.v1.ProviderService.GetDaySchedule:input_type -> provider.v1.DayScheduleRequest
	1, // 3: provider.v1.ProviderService.GetDaySchedule:output_type -> provider.v1.DayScheduleResponse
	3, // [3:4] is the sub-list for method output_type
	2, // [2:3] is the sub-list for method input_type
	2, // [2:2] is the sub-list for extension type_name
	2, // [2:2] is the sub-list for extension extendee
	0, // [0:2] is the sub-list for field type_name
}

func init() { file_provider_v1_provider_proto_init() }
func file_provider_v1_provider_proto_init() {
	if File_provider_v1_provider_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_provider_v1_provider_proto_rawDesc), len(file_provider_v1_provider_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   2,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_provider_v1_provider_proto_goTypes,
		DependencyIndexes: file_provider_v1_provider_proto_depIdxs,
		MessageInfos:      file_provider_v1_provider_proto_msgTypes,
	}.Build()
	File_provider_v1_provider_proto = out.File
	file_provider_v1_provider_proto_goTypes = nil
	file_provider_v1_provider_proto_depIdxs = nil
}
