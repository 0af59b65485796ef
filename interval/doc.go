/*Package interval defines the named genomic intervals consumed by the
  depth-aggregation pipeline: host marker genes parsed from a gene
  annotation TSV, and prophage segments parsed from the comma-joined
  id/range lists of a phage-info file.
  Coordinates are one-based and inclusive on both ends, matching samtools
  depth output.  It assumes every position fits in a PosType, which is
  currently defined as int32 since that's what BAM files are limited to.
*/
package interval
