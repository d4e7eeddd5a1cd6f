// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Command notify listens on filesystem changes and forwards received events
// to user-defined handlers.
//
// Usage
//
//	notify watch [-r] [-e events] [-c command] [-f script file] [path]...
//
// The -c flag registers a command handler, which uses the syntax of package
// template. Notify passes a struct to the template and runs the produced
// string with the system shell. Additionally the path and event type values
// are accessible to the process via NOTIFY_PATH and NOTIFY_EVENT environment
// variables.
//
// The struct being passed to the template is:
//
//	type Event struct {
//	    Path  string
//	    Event string
//	}
//
// Values for the Event field are:
//
//   - create
//   - modify
//   - attributes
//   - delete
//
// The -f flag registers a file handler, which works similarly to the -c
// handler. The only difference is the template is read from the given file
// instead of the command line.
//
// The path arguments tell notify which directories to listen on. By default
// notify listens in the current working directory. Watches, handlers and
// the number of concurrently running handlers may also be read from a YAML
// configuration file given with --config.
//
// If no handler is specified notify logs each event.
//
// # Example usage
//
// Executing event handler from command line:
//
//	~ $ notify watch -r -c 'echo "Hello from handler! (event={{.Event}}, path={{.Path}})"'
//	Hello from handler! (event=create, path=/home/user/notify.tmp)
//	...
//
// Executing event handler from file:
//
//	~ $ cat > handler <<EOF
//	> echo "Hello from handler! (event={{.Event}}, path={{.Path}})"
//	> EOF
//
//	~ $ notify watch -f handler
//	Hello from handler! (event=create, path=/home/user/notify.tmp)
//	...
//
// Besides watching, notify exposes the file metadata, symbolic link and
// process helpers it is built on through the stat, touch, link, readlink
// and run commands.
package main

import "github.com/notifyio/notify/cmd/notify/cmd"

func main() {
	cmd.Execute()
}
