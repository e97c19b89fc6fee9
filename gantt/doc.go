/*
Package gantt turns host-supplied work-order records into the geometry of a
Gantt-style timeline.

The pipeline runs once per render and keeps no state between renders:

	FieldCatalog -> Normalize -> Sequence -> BuildCalendar -> AdjustAll -> Options

RenderBar and RenderLabel are the per-row draw callbacks a host renderer
calls for every visible row. They only produce primitives in screen space;
pixel drawing, axis ticks and scaling stay with the host.
*/
package gantt
