package model

import "slices"

func setValue[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setOptional[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func setList(dst *[]string, src []string) {
	if src != nil {
		*dst = slices.Clone(src)
	}
}
