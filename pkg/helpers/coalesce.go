package helpers

func CoalesceString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func CoalesceInt64(ii ...int64) int64 {
	for _, i := range ii {
		if i != 0 {
			return i
		}
	}
	return 0
}
