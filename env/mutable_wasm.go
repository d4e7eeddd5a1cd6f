// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build js || wasip1

package env

// The host owns the environment; changes would not reach it.
const mutable = false
