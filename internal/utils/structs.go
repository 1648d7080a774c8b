package utils

import (
	"fmt"
	"reflect"
)

// ColumnTag names the struct tag that maps a field to a table column.
const ColumnTag = "db"

// StructTagValues returns the column names of a struct in field order.
func StructTagValues(input any) []string {
	var columns []string
	eachColumn(input, func(column string, _ reflect.Value) {
		columns = append(columns, column)
	})
	return columns
}

// StructToMap returns the struct's column values keyed by column name.
func StructToMap(input any) map[string]any {
	values := make(map[string]any)
	eachColumn(input, func(column string, v reflect.Value) {
		values[column] = v.Interface()
	})
	return values
}

// eachColumn panics unless input is a struct or a pointer to one.
func eachColumn(input any, fn func(column string, v reflect.Value)) {
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		column := field.Tag.Get(ColumnTag)
		if column == "" || column == "-" {
			continue
		}

		fn(column, v.Field(i))
	}
}

func ErrorWrapOrNil(err error, msg string) error {
	if err == nil {
		return nil
	}

	if msg == "" {
		return err
	}

	return fmt.Errorf("%s: %w", msg, err)
}
