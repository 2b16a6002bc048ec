/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config_test

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, config.DefaultImplicitZero, cfg.ImplicitZero)
	assert.Equal(t, config.DefaultMaxCascadeDepth, cfg.MaxCascadeDepth)
	assert.NotNil(t, cfg.Logger)
}

func TestFromViper_YAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
settings:
  implicit_zero: false
  max_cascade_depth: 7
log:
  level: warn
`)))

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.False(t, cfg.ImplicitZero)
	assert.Equal(t, 7, cfg.MaxCascadeDepth)
	require.NotNil(t, cfg.Logger)
	assert.True(t, cfg.Logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, cfg.Logger.Core().Enabled(zapcore.InfoLevel))
}

func TestFromViper_OptionsOverride(t *testing.T) {
	v := viper.New()
	v.Set(config.KeyMaxCascadeDepth, 3)

	cfg, err := config.FromViper(v, config.WithMaxCascadeDepth(9))
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.MaxCascadeDepth)
}

func TestFromViper_BadLevel(t *testing.T) {
	v := viper.New()
	v.Set(config.KeyLogLevel, "loud")

	_, err := config.FromViper(v)
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
}

func TestFromViper_Nil(t *testing.T) {
	_, err := config.FromViper(nil)
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
}
