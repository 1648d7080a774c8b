package types

type FieldKey string

const (
	FieldDate             FieldKey = "date"
	FieldWelcome          FieldKey = "welcome"
	FieldModeration       FieldKey = "moderation"
	FieldSermon           FieldKey = "sermon"
	FieldKids1Topic       FieldKey = "kids1topic"
	FieldKids1Resp        FieldKey = "kids1resp"
	FieldKids2Topic       FieldKey = "kids2topic"
	FieldKids2Resp        FieldKey = "kids2resp"
	FieldMusicKeys        FieldKey = "music_keys"
	FieldMusicResp        FieldKey = "music_resp"
	FieldTechSound        FieldKey = "tech_sound"
	FieldTechPresentation FieldKey = "tech_presentation"
	FieldInfo             FieldKey = "info"
	FieldComment          FieldKey = "comment"
)

type GroupKey string

const (
	GroupGeneral   GroupKey = "general"
	GroupKids      GroupKey = "kids"
	GroupMusicTech GroupKey = "music_tech"
	GroupOther     GroupKey = "other"
)

// Groups lists the form tabs in display order.
var Groups = []GroupKey{GroupGeneral, GroupKids, GroupMusicTech, GroupOther}

type Widget string

const (
	WidgetDateTime Widget = "datetime"
	WidgetText     Widget = "text"
	WidgetTextarea Widget = "textarea"
)

type FieldDescriptor struct {
	Key    FieldKey
	Group  GroupKey
	Widget Widget
}

// Fields is the complete, ordered schema of a service entry. Rendering,
// persistence and the roster all iterate this slice.
var Fields = []FieldDescriptor{
	{Key: FieldDate, Group: GroupGeneral, Widget: WidgetDateTime},
	{Key: FieldWelcome, Group: GroupGeneral, Widget: WidgetText},
	{Key: FieldModeration, Group: GroupGeneral, Widget: WidgetText},
	{Key: FieldSermon, Group: GroupGeneral, Widget: WidgetText},
	{Key: FieldKids1Topic, Group: GroupKids, Widget: WidgetText},
	{Key: FieldKids1Resp, Group: GroupKids, Widget: WidgetText},
	{Key: FieldKids2Topic, Group: GroupKids, Widget: WidgetText},
	{Key: FieldKids2Resp, Group: GroupKids, Widget: WidgetText},
	{Key: FieldMusicKeys, Group: GroupMusicTech, Widget: WidgetText},
	{Key: FieldMusicResp, Group: GroupMusicTech, Widget: WidgetText},
	{Key: FieldTechSound, Group: GroupMusicTech, Widget: WidgetText},
	{Key: FieldTechPresentation, Group: GroupMusicTech, Widget: WidgetText},
	{Key: FieldInfo, Group: GroupOther, Widget: WidgetTextarea},
	{Key: FieldComment, Group: GroupOther, Widget: WidgetTextarea},
}

// ContentFields returns every field except the date, in schema order.
func ContentFields() []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(Fields)-1)
	for _, f := range Fields {
		if f.Key == FieldDate {
			continue
		}
		out = append(out, f)
	}
	return out
}

// ContentFieldKeys returns the keys of ContentFields.
func ContentFieldKeys() []FieldKey {
	fields := ContentFields()
	out := make([]FieldKey, len(fields))
	for i, f := range fields {
		out[i] = f.Key
	}
	return out
}

// FieldsInGroup returns the descriptors of group g in schema order.
func FieldsInGroup(g GroupKey) []FieldDescriptor {
	var out []FieldDescriptor
	for _, f := range Fields {
		if f.Group == g {
			out = append(out, f)
		}
	}
	return out
}

func IsContentField(key FieldKey) bool {
	for _, f := range Fields {
		if f.Key == key {
			return key != FieldDate
		}
	}
	return false
}
