package impersonate

func u32(v uint32) *uint32 { return &v }
func boolp(v bool) *bool   { return &v }
