// Package segment derives objects (segments) and the relations between them
// from a label graph.
//
// An object is a maximal set of primitives transitively joined by merge edges
// for one label value: an edge whose label also labels both endpoints. Only
// labels the node metric finds interesting (cost against the empty set > 0)
// take part, and edges labeled only "_" are ignored. A primitive may belong
// to several objects, one per label; objects with the same primitive set are
// one object carrying several labels.
//
// Relations connect two objects when some primitive edge between them carries
// a label outside both endpoints' node labels, and every primitive pair
// across the two objects shares that label. Objects without incoming
// relations are roots.
//
// Extract is pure: the input graph is never modified. Object IDs (Obj0,
// Obj1, …) follow sorted primitive order and are stable for one extraction.
package segment
