// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

/*
Package strata loads a typed configuration from layered sources.

A configuration is described by two types: the final type T, and its partial P
where every setting is optional. Each [Source] is parsed into a [Layer] holding a P,
preceded by the layers it extends through an [ExtendsFrom] setting.
The layers are merged in order, then finalized so that defaults come first
and environment variables last, and the result is validated before it is converted to T.

Sources are inline code in a [format.Format], files, and URLs.
URLs are fetched over https, or with a [Fetcher] registered for their scheme,
and their content is kept in a [Cacher].

The partial of a plain struct is derived from its struct tags by package derive,
so most configurations need no hand-written partial:

	loader := derive.NewLoader[AppConfig](strata.WithEnviron(env.WithPrefix(env.OS(), "APP_")))
	if err := loader.File("config.yml"); err != nil {
		// Handle error here.
	}
	result, err := loader.Load()
*/
package strata
