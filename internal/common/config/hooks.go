package config

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/smartdata/ssm-dashboard/internal/common/ssmerrors"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/daterange"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
)

// CustomHooks is passed to viper.Unmarshal. viper keeps only the last DecodeHook option, so every
// hook, including viper's own defaults, is composed into one.
var CustomHooks = []viper.DecoderConfigOption{
	viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		SortDirectionDecodeHook(),
		DateRangeTagDecodeHook(),
	)),
}

// SortDirectionDecodeHook accepts "asc"/"desc" in any case.
func SortDirectionDecodeHook() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(model.DirectionAsc) {
			return data, nil
		}
		direction := model.SortDirection(strings.ToLower(data.(string)))
		if direction != model.DirectionAsc && direction != model.DirectionDesc {
			return nil, &ssmerrors.ErrInvalidArgument{Name: "sortDirection", Value: data, Message: "expected asc or desc"}
		}
		return direction, nil
	}
}

func DateRangeTagDecodeHook() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(daterange.LastHour) {
			return data, nil
		}
		return daterange.ParseTag(data.(string))
	}
}
