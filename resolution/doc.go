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

// Package resolution implements the pipeline that turns one address into an
// opened, placed and registered object.
//
// A Pipeline runs these steps in order, each able to abort the rest:
//
//  1. embed attachments: "{N}" parameters become correlation ids
//  2. resolve the module item through the resolver registered for
//     (module, item)
//  3. ask the placement resolvers for a connector
//  4. connect, then register the object and record its owner; a failed
//     registration disconnects the object again
//  5. play the typed setup, if any
//  6. defer the close onto the returned cleanup chain
//  7. refresh the object unless the connector does it
//
// Open absorbs and logs failures of steps 1 to 4, OpenOrThrow returns them.
package resolution
