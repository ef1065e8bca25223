package config

import (
	"fmt"
	"reflect"
)

// MergeConfig 合并配置：src 的非零字段覆盖 dst，返回合并后的 dst
// 任意一方为 nil 时返回另一方；两者都为 nil 报错
func MergeConfig[T any](dst, src *T) (*T, error) {
	if dst == nil && src == nil {
		return nil, fmt.Errorf("both dst and src cannot be nil")
	}
	if dst == nil {
		return src, nil
	}
	if src == nil {
		return dst, nil
	}

	if err := merge(reflect.ValueOf(dst).Elem(), reflect.ValueOf(src).Elem()); err != nil {
		return nil, err
	}
	return dst, nil
}

// merge 递归合并，src 零值不覆盖
func merge(dst, src reflect.Value) error {
	if !src.IsValid() || isZero(src) {
		return nil
	}

	switch dst.Kind() {
	case reflect.Struct:
		t := src.Type()
		for i := 0; i < src.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			df := dst.Field(i)
			if !df.CanSet() {
				continue
			}
			if err := merge(df, src.Field(i)); err != nil {
				return fmt.Errorf("failed to merge field %s: %w", t.Field(i).Name, err)
			}
		}

	case reflect.Ptr:
		if src.IsNil() {
			return nil
		}
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return merge(dst.Elem(), src.Elem())

	case reflect.Map:
		if dst.IsNil() {
			dst.Set(reflect.MakeMap(dst.Type()))
		}
		iter := src.MapRange()
		for iter.Next() {
			dst.SetMapIndex(iter.Key(), iter.Value())
		}

	default:
		// 切片和基本类型直接覆盖
		if dst.CanSet() {
			dst.Set(src)
		}
	}

	return nil
}

// isZero 判断是否为零值
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface, reflect.Func:
		return v.IsNil()
	case reflect.Struct:
		return v.IsZero()
	default:
		return v.IsZero()
	}
}
